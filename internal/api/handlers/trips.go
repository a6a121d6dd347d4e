package handlers

import (
	"driver-log-service/internal/api/dto"
	"driver-log-service/internal/domain"
	"driver-log-service/internal/ports"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripHandler exposes trip creation and retrieval endpoints.
type TripHandler struct {
	Repo ports.TripRepository
}

// Handle dispatches /trips by method.
func (h *TripHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, tripResponse(t))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if current == "" || pickup == "" || dropoff == "" {
		writeError(w, r, http.StatusBadRequest, "current_location, pickup_location and dropoff_location are required")
		return
	}
	if req.CurrentCycleHoursUsed < 0 || req.CurrentCycleHoursUsed > 70 {
		writeError(w, r, http.StatusBadRequest, "current_cycle_hours_used must be between 0 and 70")
		return
	}

	trip := &domain.Trip{
		ID:                    uuid.New(),
		CurrentLocation:       current,
		PickupLocation:        pickup,
		DropoffLocation:       dropoff,
		CurrentCycleHoursUsed: req.CurrentCycleHoursUsed,
		CreatedAt:             time.Now().UTC(),
	}

	if err := h.Repo.CreateTrip(r.Context(), trip); err != nil {
		log.Printf("create trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, tripResponse(trip))
}

func tripResponse(t *domain.Trip) dto.TripResponse {
	return dto.TripResponse{
		TripID:                 t.ID.String(),
		CurrentLocation:        t.CurrentLocation,
		PickupLocation:         t.PickupLocation,
		DropoffLocation:        t.DropoffLocation,
		CurrentCycleHoursUsed:  t.CurrentCycleHoursUsed,
		TotalDistanceMiles:     t.TotalDistanceMiles,
		EstimatedDurationHours: t.EstimatedDurationHours,
		CreatedAt:              t.CreatedAt,
	}
}
