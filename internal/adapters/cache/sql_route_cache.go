package cache

import (
	"context"
	"database/sql"
	"driver-log-service/internal/platform/obs"
	"driver-log-service/internal/ports"
	"errors"
	"fmt"
)

// SQLRouteCache is the Postgres variant of the route-estimate cache, used
// when several service instances share one cache database.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch cached estimates for one origin and multiple destinations.
func (s *SQLRouteCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.RouteEstimate, err error) {
	defer obs.Time(ctx, "route.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}
	if origin == "" {
		return nil, errors.New("get route cache: origin must not be empty")
	}

	uniq, _ := dedupe(destinations)
	if len(uniq) == 0 {
		return map[string]ports.RouteEstimate{}, nil
	}

	q := `
	SELECT destination, distance_miles, duration_hours
    FROM route_cache
    WHERE origin = $1
        AND destination = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.RouteEstimate, len(uniq))
	for rows.Next() {
		var dest string
		var miles, hours float64
		if err := rows.Scan(&dest, &miles, &hours); err != nil {
			return nil, fmt.Errorf("get route cache: scan rows: %w", err)
		}
		out[dest] = ports.RouteEstimate{DistanceMiles: miles, DurationHours: hours}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get route cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many cached route estimates for a single origin.
func (s *SQLRouteCache) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.RouteEstimate,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if origin == "" {
		return errors.New("insert route cache: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert route cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_cache (origin, destination, distance_miles, duration_hours)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours;
	`)
	if err != nil {
		return fmt.Errorf("insert route cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if dest == "" {
			return fmt.Errorf("insert route cache: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, origin, dest, r.DistanceMiles, r.DurationHours); err != nil {
			return fmt.Errorf("insert route cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert route cache commit: %w", err)
	}
	return nil
}
