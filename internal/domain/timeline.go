package domain

import "time"

// MinutesPerDay is the length of the daily log scale.
const MinutesPerDay = 1440.0

// Segment is a maximal contiguous span of one duty status on the
// reconstructed day. Minutes are fractional to preserve sub-minute precision.
type Segment struct {
	Status      Status
	StartMinute float64
	EndMinute   float64
}

// Minutes returns the segment duration in minutes.
func (s Segment) Minutes() float64 { return s.EndMinute - s.StartMinute }

// DayTimeline is the reconstruction result for one calendar day: an ordered,
// gapless, non-overlapping partition of [0, 1440) plus per-status totals.
//
// Invariants (enforced by the reconstructor):
//   - Segments[0].StartMinute == 0 and Segments[last].EndMinute == 1440
//   - Segments[i].EndMinute == Segments[i+1].StartMinute for all i
//   - no two consecutive segments share a status
//   - Totals sums to exactly 1440 across the four statuses
type DayTimeline struct {
	Date     time.Time
	Segments []Segment
	Totals   map[Status]float64
}
