package handlers

import (
	"driver-log-service/internal/adapters/render"
	"driver-log-service/internal/api/dto"
	"driver-log-service/internal/domain"
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

// LogHandler reconstructs and renders daily logs. Events come either inline
// with the request (raw upstream records, validated here) or from the duty
// events stored for a planned trip.
type LogHandler struct {
	Trips    ports.TripRepository
	Events   ports.DutyEventRepository
	Renderer *render.Renderer
}

// Build handles POST /logs: reconstruct one day and return segments, totals
// and any per-event rejection warnings.
func (h *LogHandler) Build(w http.ResponseWriter, r *http.Request) {
	timeline, warnings, ok := h.resolveTimeline(w, r)
	if !ok {
		return
	}

	res := dto.LogResponse{
		Date:     timeline.Date.Format("2006-01-02"),
		Segments: make([]dto.SegmentResponse, 0, len(timeline.Segments)),
		Totals:   make(map[string]float64, len(timeline.Totals)),
		Warnings: warningResponses(warnings),
	}
	for _, seg := range timeline.Segments {
		res.Segments = append(res.Segments, dto.SegmentResponse{
			Status:      string(seg.Status),
			StartMinute: seg.StartMinute,
			EndMinute:   seg.EndMinute,
		})
	}
	for status, minutes := range timeline.Totals {
		res.Totals[string(status)] = minutes
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Render handles POST /logs/render: same input as Build, but the response is
// the drawn SVG log grid.
func (h *LogHandler) Render(w http.ResponseWriter, r *http.Request) {
	timeline, _, ok := h.resolveTimeline(w, r)
	if !ok {
		return
	}

	prims := services.Project(timeline, h.Renderer.Canvas())
	writeSVG(w, r, h.Renderer.Render(timeline, prims))
}

// resolveTimeline decodes the request, gathers the day's events and runs the
// reconstruction. It writes the error response itself when ok is false.
func (h *LogHandler) resolveTimeline(
	w http.ResponseWriter,
	r *http.Request,
) (*domain.DayTimeline, []services.Warning, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return nil, nil, false
	}

	var req dto.LogRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return nil, nil, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return nil, nil, false
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return nil, nil, false
	}

	if len(req.Events) > 0 {
		raw := make([]services.RawEvent, 0, len(req.Events))
		for _, ev := range req.Events {
			raw = append(raw, services.RawEvent{Status: ev.Status, Start: ev.Start, End: ev.End})
		}

		timeline, warnings, err := services.BuildDailyLog(date, raw)
		if err != nil {
			log.Printf("build daily log failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return nil, nil, false
		}
		return timeline, warnings, true
	}

	if strings.TrimSpace(req.TripID) == "" {
		writeError(w, r, http.StatusBadRequest, "either events or trip_id is required")
		return nil, nil, false
	}
	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "trip_id must be a UUID")
		return nil, nil, false
	}

	if _, err := h.Trips.GetTrip(r.Context(), tripID); err != nil {
		if errors.Is(err, ports.ErrTripNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return nil, nil, false
		}
		log.Printf("get trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}

	events, err := h.Events.ListForDay(r.Context(), tripID, services.Midnight(date))
	if err != nil {
		log.Printf("list duty events failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}

	timeline, err := services.BuildDailyLogFromEvents(date, events)
	if err != nil {
		log.Printf("build daily log failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return nil, nil, false
	}
	return timeline, nil, true
}

func warningResponses(warnings []services.Warning) []dto.WarningResponse {
	out := make([]dto.WarningResponse, 0, len(warnings))
	for _, wn := range warnings {
		out = append(out, dto.WarningResponse{Index: wn.Index, Reason: wn.Reason, Detail: wn.Detail})
	}
	return out
}
