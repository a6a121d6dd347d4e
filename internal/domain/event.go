package domain

import (
	"time"

	"github.com/google/uuid"
)

// DutyEvent is one observed duty-status interval for a trip, in absolute time.
// Events are supplied by the upstream trip log and carry no ordering or
// coverage guarantees: they may overlap, leave gaps, or arrive unsorted.
type DutyEvent struct {
	TripID uuid.UUID
	Status Status
	Start  time.Time
	End    time.Time
}

// Event is a duty-status interval already projected onto one day's
// minute-of-day scale. This is the reconstruction input unit.
type Event struct {
	Status      Status
	StartMinute float64
	EndMinute   float64
}
