package api

import (
	"driver-log-service/internal/adapters/render"
	"driver-log-service/internal/api/handlers"
	"driver-log-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters
// except for the renderer, which is pure presentation).
func NewRouter(
	trips ports.TripRepository,
	events ports.DutyEventRepository,
	provider ports.DistanceProvider,
	renderer *render.Renderer,
) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{Repo: trips}
	planHandler := &handlers.PlanHandler{
		Trips:    trips,
		Events:   events,
		Provider: provider,
	}
	logHandler := &handlers.LogHandler{
		Trips:    trips,
		Events:   events,
		Renderer: renderer,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips", tripHandler.Handle)
	mux.HandleFunc("/trips/plan", planHandler.Plan)
	mux.HandleFunc("/logs", logHandler.Build)
	mux.HandleFunc("/logs/render", logHandler.Render)

	return requestIDMiddleware(loggingMiddleware(mux))
}
