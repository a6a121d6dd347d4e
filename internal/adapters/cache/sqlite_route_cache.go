package cache

import (
	"context"
	"database/sql"
	"driver-log-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// SQLite-backed cache for origin->destination route estimates.
// Keys are expected to be consistent (e.g., already normalized) by the caller.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Fetch cached estimates for one origin and multiple destinations.
func (s *SqliteRouteCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.RouteEstimate, error) {
	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}
	if origin == "" {
		return nil, errors.New("get route cache: origin must not be empty")
	}

	uniq, ph := dedupe(destinations)
	if len(uniq) == 0 {
		return map[string]ports.RouteEstimate{}, nil
	}

	args := make([]any, 0, 1+len(uniq))
	args = append(args, origin)
	for _, d := range uniq {
		args = append(args, d)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        destination,
        distance_miles,
        duration_hours
    FROM route_cache
    WHERE origin = ?
        AND destination IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteRouteCache) PutMany(
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
	INSERT OR REPLACE INTO route_cache (
        origin,
        destination,
        distance_miles,
        duration_hours
    )
    VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert route cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
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

// dedupe trims, de-duplicates and drops empty keys, returning the kept keys
// and a matching slice of `?` placeholders.
func dedupe(keys []string) (uniq []string, placeholders []string) {
	seen := map[string]struct{}{}
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
		placeholders = append(placeholders, "?")
	}
	return uniq, placeholders
}
