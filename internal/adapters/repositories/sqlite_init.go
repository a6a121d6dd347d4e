package repositories

import (
	"database/sql"
	"driver-log-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_hours_used REAL NOT NULL DEFAULT 0,
		total_distance_miles REAL NOT NULL DEFAULT 0,
		estimated_duration_hours REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	`

	createDutyEventsQuery := `
	CREATE TABLE IF NOT EXISTS duty_events (
		trip_id TEXT NOT NULL REFERENCES trips(trip_id),
		status TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_miles REAL NOT NULL,
        duration_hours REAL NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_duty_events_trip_start
    ON duty_events(trip_id, start_at);
	`

	statements := []string{
		createTripsQuery,
		createDutyEventsQuery,
		createRouteCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}

type tripSeed struct {
	TripID                string  `json:"trip_id"`
	CurrentLocation       string  `json:"current_location"`
	PickupLocation        string  `json:"pickup_location"`
	DropoffLocation       string  `json:"dropoff_location"`
	CurrentCycleHoursUsed float64 `json:"current_cycle_hours_used"`
}

type dutyEventSeed struct {
	Status string `json:"status"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type seedFile struct {
	Trip   tripSeed        `json:"trip"`
	Events []dutyEventSeed `json:"events"`
}

// Populate the database with a demo trip and its duty events from a JSON
// file. Re-running replaces the demo trip's events.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed demo trip: read %q: %w", jsonPath, err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed demo trip: parse json: %w", err)
	}

	tripID, err := uuid.Parse(strings.TrimSpace(data.Trip.TripID))
	if err != nil {
		return fmt.Errorf("seed demo trip: invalid trip_id: %w", err)
	}
	for _, loc := range []string{data.Trip.CurrentLocation, data.Trip.PickupLocation, data.Trip.DropoffLocation} {
		if strings.TrimSpace(loc) == "" {
			return errors.New("seed demo trip: trip locations cannot be empty")
		}
	}

	events := make([]domain.DutyEvent, 0, len(data.Events))
	for i, ev := range data.Events {
		status, err := domain.ParseStatus(ev.Status)
		if err != nil {
			return fmt.Errorf("seed demo trip: event at index %d: %w", i+1, err)
		}
		start, err := time.Parse(time.RFC3339, ev.Start)
		if err != nil {
			return fmt.Errorf("seed demo trip: event at index %d: parse start: %w", i+1, err)
		}
		end, err := time.Parse(time.RFC3339, ev.End)
		if err != nil {
			return fmt.Errorf("seed demo trip: event at index %d: parse end: %w", i+1, err)
		}
		events = append(events, domain.DutyEvent{TripID: tripID, Status: status, Start: start, End: end})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed demo trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip := `
	INSERT OR REPLACE INTO trips (
		trip_id,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_hours_used,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	if _, err := tx.Exec(
		insertTrip,
		tripID.String(),
		data.Trip.CurrentLocation,
		data.Trip.PickupLocation,
		data.Trip.DropoffLocation,
		data.Trip.CurrentCycleHoursUsed,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("seed demo trip: insert trip: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM duty_events WHERE trip_id = ?;`, tripID.String()); err != nil {
		return fmt.Errorf("seed demo trip: clear events: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO duty_events (trip_id, status, start_at, end_at)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed demo trip: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(
			ev.TripID.String(),
			string(ev.Status),
			ev.Start.Format(time.RFC3339),
			ev.End.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("seed demo trip: insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed demo trip: commit tx: %w", err)
	}
	return nil
}
