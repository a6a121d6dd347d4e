package services

import (
	"driver-log-service/internal/domain"
)

// SplitAtMidnights splits every duty event that crosses a local midnight
// into per-day pieces, preserving order. The daily reconstructor treats a
// day in isolation and clamps at its edges, so storing pre-split events
// keeps each stored event attributable to exactly one calendar day.
func SplitAtMidnights(events []domain.DutyEvent) []domain.DutyEvent {
	out := make([]domain.DutyEvent, 0, len(events))
	for _, ev := range events {
		start := ev.Start
		for {
			nextMidnight := Midnight(start).AddDate(0, 0, 1)
			if !ev.End.After(nextMidnight) {
				break
			}
			piece := ev
			piece.Start = start
			piece.End = nextMidnight
			out = append(out, piece)
			start = nextMidnight
		}
		last := ev
		last.Start = start
		out = append(out, last)
	}
	return out
}
