package dto

// LogRequest asks for one day's reconstructed log. Events may be supplied
// inline (raw upstream records) or loaded from a stored trip via TripID;
// inline events win when both are present.
type LogRequest struct {
	Date   string            `json:"date"`
	TripID string            `json:"trip_id"`
	Events []RawEventRequest `json:"events"`
}

type RawEventRequest struct {
	Status string `json:"status"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type SegmentResponse struct {
	Status      string  `json:"status"`
	StartMinute float64 `json:"start_minute"`
	EndMinute   float64 `json:"end_minute"`
}

type WarningResponse struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

type LogResponse struct {
	Date     string             `json:"date"`
	Segments []SegmentResponse  `json:"segments"`
	Totals   map[string]float64 `json:"totals"`
	Warnings []WarningResponse  `json:"warnings"`
}
