package repositories

import (
	"context"
	"database/sql"
	"driver-log-service/internal/domain"
	"driver-log-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Persist a new trip.
func (s *SqliteTripRepository) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if trip == nil {
		return errors.New("create trip: trip is nil")
	}

	query := `
	INSERT INTO trips (
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_hours_used,
		total_distance_miles,
		estimated_duration_hours,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(
		ctx,
		query,
		trip.ID.String(),
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleHoursUsed,
		trip.TotalDistanceMiles,
		trip.EstimatedDurationHours,
		trip.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create trip: insert trip %s: %w", trip.ID, err)
	}
	return nil
}

// Return all trips, newest first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_hours_used,
		total_distance_miles,
		estimated_duration_hours,
		created_at
	FROM trips
	ORDER BY created_at DESC, trip_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 16)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}
	return trips, nil
}

// Return one trip by ID.
func (s *SqliteTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_hours_used,
		total_distance_miles,
		estimated_duration_hours,
		created_at
	FROM trips
	WHERE trip_id = ?;
	`
	row := s.DB.QueryRowContext(ctx, query, id.String())
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %s: %w", id, ports.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}
	return trip, nil
}

// Store the route metrics computed for a trip.
func (s *SqliteTripRepository) SaveTripEstimates(
	ctx context.Context,
	id uuid.UUID,
	distanceMiles, durationHours float64,
) error {
	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	UPDATE trips
	SET total_distance_miles = ?,
		estimated_duration_hours = ?
	WHERE trip_id = ?;
	`
	res, err := s.DB.ExecContext(ctx, query, distanceMiles, durationHours, id.String())
	if err != nil {
		return fmt.Errorf("save trip estimates %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("save trip estimates %s: %w", id, ports.ErrTripNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var (
		idStr, createdStr string
		trip              domain.Trip
	)
	err := row.Scan(
		&idStr,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CurrentCycleHoursUsed,
		&trip.TotalDistanceMiles,
		&trip.EstimatedDurationHours,
		&createdStr,
	)
	if err != nil {
		return nil, err
	}

	trip.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("scan trip: invalid trip_id %q: %w", idStr, err)
	}
	trip.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return nil, fmt.Errorf("scan trip: invalid created_at %q: %w", createdStr, err)
	}
	return &trip, nil
}
