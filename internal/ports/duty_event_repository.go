package ports

import (
	"context"
	"driver-log-service/internal/domain"
	"time"

	"github.com/google/uuid"
)

// Port: a boundary for storing and retrieving duty-status events.
type DutyEventRepository interface {
	// Replace all stored duty events for a trip with the given set.
	ReplaceForTrip(ctx context.Context, tripID uuid.UUID, events []domain.DutyEvent) error
	// Retrieve every duty event for a trip that overlaps the calendar day
	// starting at dayStart, ordered by start time.
	ListForDay(ctx context.Context, tripID uuid.UUID, dayStart time.Time) ([]domain.DutyEvent, error)
}
