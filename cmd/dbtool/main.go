// dbtool provisions the shared Postgres cache database used when several
// service instances run with CACHE_BACKEND=postgres, and optionally warms
// the geocode cache from a JSON file of known addresses.
package main

import (
	"context"
	"database/sql"
	"driver-log-service/internal/adapters/cache"
	"driver-log-service/internal/adapters/repositories"
	"driver-log-service/internal/config"
	"driver-log-service/internal/domain"
	"driver-log-service/internal/platform/db"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Println("Initializing cache schema...")
	if err := repositories.InitCacheSchemaPostgres(pg); err != nil {
		log.Fatalf("cache schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	geocodePath := config.Get("GEOCODE_SEED_PATH", "")
	if geocodePath == "" {
		return
	}

	log.Println("Warming geocode cache...")
	if err := warmGeocodeCache(pg, geocodePath); err != nil {
		log.Fatalf("geocode cache warm failed: %v", err)
	}
	log.Println("Geocode cache warm complete.")
}

type geocodeSeed struct {
	Address string  `json:"address"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
}

func warmGeocodeCache(pg *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("warm geocode cache: read %q: %w", jsonPath, err)
	}

	var seeds []geocodeSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("warm geocode cache: parse json: %w", err)
	}

	entries := make(map[string]domain.Coordinates, len(seeds))
	for i, s := range seeds {
		addr := strings.Join(strings.Fields(s.Address), " ")
		if addr == "" {
			return fmt.Errorf("warm geocode cache: empty address at index %d", i+1)
		}
		entries[addr] = domain.Coordinates{Lon: s.Lon, Lat: s.Lat}
	}

	geoCache := cache.NewSQLGeocodeCache(pg)
	if err := geoCache.PutMany(context.Background(), entries); err != nil {
		return fmt.Errorf("warm geocode cache: %w", err)
	}
	return nil
}
