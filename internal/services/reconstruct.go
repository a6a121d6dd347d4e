package services

import (
	"driver-log-service/internal/domain"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrReconstruction reports that a reconstructed timeline failed its
// coverage/contiguity check. This is a logic bug, never an input problem.
var ErrReconstruction = errors.New("timeline reconstruction invariant violated")

// coverageEpsilon absorbs float accumulation over a day of fractional minutes.
const coverageEpsilon = 1e-6

// Reconstruct turns an unordered, gap-ridden, possibly-overlapping event list
// into a gapless partition of the 24-hour day.
//
// Events are processed in start-minute order (ties keep input order, so the
// result is deterministic). A cursor sweeps the day from minute 0 with
// Off Duty as the background status; gaps between events inherit the
// previously resolved status, and where events overlap the earlier event
// wins the disputed sub-interval. After the last event the day closes
// Off Duty. Zero-length and inverted events are dropped silently.
// Adjacent same-status segments are coalesced before the timeline is
// returned.
func Reconstruct(date time.Time, events []domain.Event) (*domain.DayTimeline, error) {
	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMinute < sorted[j].StartMinute
	})

	cursor := 0.0
	current := domain.StatusOffDuty
	segments := make([]domain.Segment, 0, 2*len(sorted)+1)

	for _, ev := range sorted {
		if ev.EndMinute <= ev.StartMinute {
			continue
		}

		if ev.StartMinute > cursor {
			segments = append(segments, domain.Segment{
				Status:      current,
				StartMinute: cursor,
				EndMinute:   ev.StartMinute,
			})
			cursor = ev.StartMinute
		}

		// The portion of the event already behind the cursor belongs to an
		// earlier event (first-wins overlap resolution).
		start := math.Max(ev.StartMinute, cursor)
		if ev.EndMinute > start {
			segments = append(segments, domain.Segment{
				Status:      ev.Status,
				StartMinute: start,
				EndMinute:   ev.EndMinute,
			})
			current = ev.Status
			cursor = ev.EndMinute
		}
	}

	if cursor < domain.MinutesPerDay {
		segments = append(segments, domain.Segment{
			Status:      domain.StatusOffDuty,
			StartMinute: cursor,
			EndMinute:   domain.MinutesPerDay,
		})
	}

	segments = Coalesce(segments)

	if err := verifyCoverage(segments); err != nil {
		return nil, err
	}

	return &domain.DayTimeline{
		Date:     Midnight(date),
		Segments: segments,
		Totals:   Totals(segments),
	}, nil
}

// Coalesce merges runs of adjacent same-status segments into single
// segments. It is a no-op on already-coalesced input.
func Coalesce(segments []domain.Segment) []domain.Segment {
	out := make([]domain.Segment, 0, len(segments))
	for _, seg := range segments {
		n := len(out)
		if n > 0 && out[n-1].Status == seg.Status {
			out[n-1].EndMinute = seg.EndMinute
			continue
		}
		out = append(out, seg)
	}
	return out
}

// verifyCoverage asserts the full-day contiguity invariant. Unreachable for
// the algorithm above; it guards against future edits.
func verifyCoverage(segments []domain.Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: no segments emitted", ErrReconstruction)
	}
	if segments[0].StartMinute != 0 {
		return fmt.Errorf("%w: day starts at minute %v, want 0", ErrReconstruction, segments[0].StartMinute)
	}
	last := segments[len(segments)-1]
	if math.Abs(last.EndMinute-domain.MinutesPerDay) > coverageEpsilon {
		return fmt.Errorf("%w: day ends at minute %v, want %v", ErrReconstruction, last.EndMinute, domain.MinutesPerDay)
	}
	for i := 0; i+1 < len(segments); i++ {
		if segments[i].EndMinute != segments[i+1].StartMinute {
			return fmt.Errorf(
				"%w: segment %d ends at %v but segment %d starts at %v",
				ErrReconstruction, i, segments[i].EndMinute, i+1, segments[i+1].StartMinute,
			)
		}
	}
	return nil
}
