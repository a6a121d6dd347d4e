package dto

import "time"

type PlanTripRequest struct {
	TripID   string     `json:"trip_id"`
	DepartAt *time.Time `json:"depart_at"`
}

type StopResponse struct {
	Kind     string    `json:"kind"`
	Location string    `json:"location"`
	ArriveAt time.Time `json:"arrive_at"`
	DepartAt time.Time `json:"depart_at"`
}

type DutyEventResponse struct {
	Status string    `json:"status"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type PlanTripResponse struct {
	Trip       TripResponse        `json:"trip"`
	Stops      []StopResponse      `json:"stops"`
	DutyEvents []DutyEventResponse `json:"duty_events"`
}
