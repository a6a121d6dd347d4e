package services

import (
	"driver-log-service/internal/domain"
	"time"
)

// Midnight returns the local midnight anchoring the given calendar day.
func Midnight(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// MinuteOfDay projects an absolute instant onto the anchor day's
// minute-of-day scale [0, 1440]. Instants before the anchor's midnight clamp
// to 0 and instants at or after the next midnight clamp to 1440; events that
// genuinely span midnights are expected to be split by the caller before the
// day is reconstructed. Seconds survive as fractional minutes so the rendered
// grid lines up with sub-minute log entries.
func MinuteOfDay(t time.Time, anchor time.Time) float64 {
	m := t.Sub(Midnight(anchor)).Minutes()
	if m < 0 {
		return 0
	}
	if m > domain.MinutesPerDay {
		return domain.MinutesPerDay
	}
	return m
}
