package handlers

import (
	"driver-log-service/internal/api/dto"
	"driver-log-service/internal/ports"
	"driver-log-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlanHandler orchestrates route estimation and duty-schedule derivation for
// a trip. It coordinates repository access, the distance provider, and the
// hours-of-service planner, then persists the resulting duty events.
type PlanHandler struct {
	Trips    ports.TripRepository
	Events   ports.DutyEventRepository
	Provider ports.DistanceProvider
}

// Plan handles POST /trips/plan.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanTripRequest

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

	tripID, err := uuid.Parse(strings.TrimSpace(req.TripID))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "trip_id must be a UUID")
		return
	}

	trip, err := h.Trips.GetTrip(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	depart := time.Now().UTC()
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	plan, err := services.PlanTrip(r.Context(), trip, depart, h.Provider)
	if err != nil {
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Trips.SaveTripEstimates(r.Context(), tripID, plan.TotalDistanceMiles, plan.EstimatedDurationHours); err != nil {
		log.Printf("save trip estimates failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if err := h.Events.ReplaceForTrip(r.Context(), tripID, plan.DutyEvents); err != nil {
		log.Printf("save duty events failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	trip.TotalDistanceMiles = plan.TotalDistanceMiles
	trip.EstimatedDurationHours = plan.EstimatedDurationHours

	res := dto.PlanTripResponse{
		Trip:       tripResponse(trip),
		Stops:      make([]dto.StopResponse, 0, len(plan.Stops)),
		DutyEvents: make([]dto.DutyEventResponse, 0, len(plan.DutyEvents)),
	}
	for _, s := range plan.Stops {
		res.Stops = append(res.Stops, dto.StopResponse{
			Kind:     string(s.Kind),
			Location: s.Location,
			ArriveAt: s.ArriveAt,
			DepartAt: s.DepartAt,
		})
	}
	for _, ev := range plan.DutyEvents {
		res.DutyEvents = append(res.DutyEvents, dto.DutyEventResponse{
			Status: string(ev.Status),
			Start:  ev.Start,
			End:    ev.End,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
