package main

import (
	"database/sql"
	"driver-log-service/internal/adapters/cache"
	"driver-log-service/internal/adapters/distance"
	"driver-log-service/internal/adapters/render"
	"driver-log-service/internal/adapters/repositories"
	"driver-log-service/internal/api"
	"driver-log-service/internal/config"
	"driver-log-service/internal/platform/db"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, ORS, SVG renderer) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/demo_trip.json")
	stylePath := config.Get("RENDER_STYLE_PATH", "")
	port := config.Get("PORT", "8080")

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	sqlite, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlite.Close()

	// Initialize schema and seed a demo trip on startup for local runs.
	if err := initAndSeed(sqlite, seedPath); err != nil {
		log.Fatal(err)
	}

	// The ORS provider uses persistent caches to avoid repeated geocode and
	// matrix calls. CACHE_BACKEND=postgres points them at a shared Postgres
	// cache database (provisioned by cmd/dbtool) instead of local SQLite.
	var (
		routeCache distance.RouteCache
		geoCache   distance.GeocodeCache
	)
	switch backend := config.Get("CACHE_BACKEND", "sqlite"); backend {
	case "sqlite":
		routeCache = cache.NewSqliteRouteCache(sqlite)
		geoCache = cache.NewSqliteGeocodeCache(sqlite)
	case "postgres":
		pg, err := db.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		routeCache = cache.NewSQLRouteCache(pg)
		geoCache = cache.NewSQLGeocodeCache(pg)
	default:
		log.Fatalf("unknown CACHE_BACKEND %q (want sqlite or postgres)", backend)
	}

	provider, err := distance.NewORSDistanceProvider(orsKey, routeCache, geoCache)
	if err != nil {
		log.Fatal(err)
	}

	style, err := render.LoadStyle(stylePath)
	if err != nil {
		log.Fatal(err)
	}

	trips := repositories.NewSqliteTripRepository(sqlite)
	events := repositories.NewSqliteDutyEventRepository(sqlite)
	router := api.NewRouter(trips, events, provider, render.NewRenderer(style))

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	sqlite, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqlite.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqlite, nil
}

func initAndSeed(sqlite *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqlite); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(sqlite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
