package services

import "driver-log-service/internal/domain"

// Totals sums segment durations per duty status. All four statuses are
// present in the result, zero-valued when unused, so callers can render the
// totals column without existence checks. Over a valid timeline the four
// values sum to exactly one day.
func Totals(segments []domain.Segment) map[domain.Status]float64 {
	totals := make(map[domain.Status]float64, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		totals[s] = 0
	}
	for _, seg := range segments {
		totals[seg.Status] += seg.Minutes()
	}
	return totals
}
