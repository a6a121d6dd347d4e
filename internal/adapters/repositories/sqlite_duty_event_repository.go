package repositories

import (
	"context"
	"database/sql"
	"driver-log-service/internal/domain"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLite-backed implementation of the DutyEventRepository port.
type SqliteDutyEventRepository struct {
	DB *sql.DB
}

func NewSqliteDutyEventRepository(db *sql.DB) *SqliteDutyEventRepository {
	return &SqliteDutyEventRepository{DB: db}
}

// Replace all stored duty events for a trip with the given set.
func (s *SqliteDutyEventRepository) ReplaceForTrip(
	ctx context.Context,
	tripID uuid.UUID,
	events []domain.DutyEvent,
) error {
	if s.DB == nil {
		return errors.New("sqlite duty event repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace duty events: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`DELETE FROM duty_events WHERE trip_id = ?;`,
		tripID.String(),
	); err != nil {
		return fmt.Errorf("replace duty events: clear trip %s: %w", tripID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO duty_events (trip_id, status, start_at, end_at)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("replace duty events: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(
			ctx,
			tripID.String(),
			string(ev.Status),
			ev.Start.Format(time.RFC3339),
			ev.End.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("replace duty events: insert event at %s: %w", ev.Start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace duty events: commit tx: %w", err)
	}
	return nil
}

// Return every duty event for a trip that overlaps the calendar day starting
// at dayStart, ordered by start time. RFC 3339 strings compare correctly as
// text within one UTC offset, which is how events are stored.
func (s *SqliteDutyEventRepository) ListForDay(
	ctx context.Context,
	tripID uuid.UUID,
	dayStart time.Time,
) ([]domain.DutyEvent, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite duty event repository: DB is nil")
	}

	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
	SELECT status, start_at, end_at
	FROM duty_events
	WHERE trip_id = ?
		AND start_at < ?
		AND end_at > ?
	ORDER BY start_at;
	`
	rows, err := s.DB.QueryContext(
		ctx,
		query,
		tripID.String(),
		dayEnd.UTC().Format(time.RFC3339),
		dayStart.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("list duty events: query duty_events table: %w", err)
	}
	defer rows.Close()

	events := make([]domain.DutyEvent, 0, 16)
	for rows.Next() {
		var statusStr, startStr, endStr string
		if err := rows.Scan(&statusStr, &startStr, &endStr); err != nil {
			return nil, fmt.Errorf("list duty events: scan row: %w", err)
		}

		status, err := domain.ParseStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("list duty events: %w", err)
		}
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return nil, fmt.Errorf("list duty events: invalid start_at %q: %w", startStr, err)
		}
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return nil, fmt.Errorf("list duty events: invalid end_at %q: %w", endStr, err)
		}

		events = append(events, domain.DutyEvent{TripID: tripID, Status: status, Start: start, End: end})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list duty events: row iteration: %w", err)
	}
	return events, nil
}
