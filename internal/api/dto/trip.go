package dto

import "time"

type CreateTripRequest struct {
	CurrentLocation       string  `json:"current_location"`
	PickupLocation        string  `json:"pickup_location"`
	DropoffLocation       string  `json:"dropoff_location"`
	CurrentCycleHoursUsed float64 `json:"current_cycle_hours_used"`
}

type TripResponse struct {
	TripID                 string    `json:"trip_id"`
	CurrentLocation        string    `json:"current_location"`
	PickupLocation         string    `json:"pickup_location"`
	DropoffLocation        string    `json:"dropoff_location"`
	CurrentCycleHoursUsed  float64   `json:"current_cycle_hours_used"`
	TotalDistanceMiles     float64   `json:"total_distance_miles"`
	EstimatedDurationHours float64   `json:"estimated_duration_hours"`
	CreatedAt              time.Time `json:"created_at"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
