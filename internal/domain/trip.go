package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip holds the basic trip info entered by the driver plus the route
// metrics filled in once a plan has been computed.
type Trip struct {
	ID                     uuid.UUID
	CurrentLocation        string
	PickupLocation         string
	DropoffLocation        string
	CurrentCycleHoursUsed  float64
	TotalDistanceMiles     float64
	EstimatedDurationHours float64
	CreatedAt              time.Time
}

// StopKind classifies a planned stop along a trip.
type StopKind string

const (
	StopPickup  StopKind = "pickup"
	StopFuel    StopKind = "fuel"
	StopRest    StopKind = "rest"
	StopDropoff StopKind = "dropoff"
)

// Stop is one planned halt on a trip: where the truck stops, when it
// arrives, and when it departs again.
type Stop struct {
	Kind     StopKind
	Location string
	ArriveAt time.Time
	DepartAt time.Time
}
