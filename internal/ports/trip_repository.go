package ports

import (
	"context"
	"driver-log-service/internal/domain"
	"errors"

	"github.com/google/uuid"
)

// ErrTripNotFound reports a lookup for a trip ID with no stored row.
var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for storing and retrieving Trip entities.
type TripRepository interface {
	// Persist a new trip.
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	// Retrieve all trips, newest first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	// Retrieve one trip by ID.
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	// Store the route metrics computed for a trip.
	SaveTripEstimates(ctx context.Context, id uuid.UUID, distanceMiles, durationHours float64) error
}
