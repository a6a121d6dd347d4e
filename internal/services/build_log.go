package services

import (
	"driver-log-service/internal/domain"
	"fmt"
	"time"
)

// Rejection reasons attached to warnings for events excluded from a log.
const (
	WarnInvalidStatus      = "invalid_status"
	WarnMalformedTimestamp = "malformed_timestamp"
)

// RawEvent is one duty-status record as the upstream log API delivers it:
// a status string and RFC 3339 timestamps, none of them trusted yet.
type RawEvent struct {
	Status string
	Start  string
	End    string
}

// Warning reports one raw event that was rejected during normalization.
// Index refers to the event's position in the submitted list.
type Warning struct {
	Index  int
	Reason string
	Detail string
}

// BuildDailyLog normalizes raw upstream events and reconstructs the day.
//
// Malformed events (unrecognized status, unparseable timestamp) are excluded
// and reported as warnings rather than failing the call, so one bad upstream
// record does not block the rest of the day. Events with end before start
// are dropped silently; they cannot affect the rendered grid. A non-nil
// error only ever means the reconstruction invariant check failed.
func BuildDailyLog(date time.Time, raw []RawEvent) (*domain.DayTimeline, []Warning, error) {
	events := make([]domain.Event, 0, len(raw))
	var warnings []Warning

	for i, r := range raw {
		status, err := domain.ParseStatus(r.Status)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Reason: WarnInvalidStatus, Detail: err.Error()})
			continue
		}

		start, err := time.Parse(time.RFC3339, r.Start)
		if err != nil {
			warnings = append(warnings, Warning{
				Index:  i,
				Reason: WarnMalformedTimestamp,
				Detail: fmt.Sprintf("start: %v", err),
			})
			continue
		}

		end, err := time.Parse(time.RFC3339, r.End)
		if err != nil {
			warnings = append(warnings, Warning{
				Index:  i,
				Reason: WarnMalformedTimestamp,
				Detail: fmt.Sprintf("end: %v", err),
			})
			continue
		}

		if end.Before(start) {
			continue
		}

		events = append(events, domain.Event{
			Status:      status,
			StartMinute: MinuteOfDay(start, date),
			EndMinute:   MinuteOfDay(end, date),
		})
	}

	timeline, err := Reconstruct(date, events)
	if err != nil {
		return nil, warnings, fmt.Errorf("build daily log: %w", err)
	}
	return timeline, warnings, nil
}

// BuildDailyLogFromEvents reconstructs a day from already-validated duty
// events, e.g. ones loaded from storage. Events only need to overlap the
// day; the portions outside it are clamped away.
func BuildDailyLogFromEvents(date time.Time, events []domain.DutyEvent) (*domain.DayTimeline, error) {
	converted := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if ev.End.Before(ev.Start) {
			continue
		}
		converted = append(converted, domain.Event{
			Status:      ev.Status,
			StartMinute: MinuteOfDay(ev.Start, date),
			EndMinute:   MinuteOfDay(ev.End, date),
		})
	}

	timeline, err := Reconstruct(date, converted)
	if err != nil {
		return nil, fmt.Errorf("build daily log: %w", err)
	}
	return timeline, nil
}
