// Package main is the entry point for the Surprise Calendar server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/surprise-calendar/backend/internal/api"
	"github.com/surprise-calendar/backend/internal/assets"
	"github.com/surprise-calendar/backend/internal/challenge"
	"github.com/surprise-calendar/backend/internal/event"
	"github.com/surprise-calendar/backend/internal/gate"
	"github.com/surprise-calendar/backend/internal/schedule"
	"github.com/surprise-calendar/backend/internal/storage"
	"github.com/surprise-calendar/backend/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	eventCfg := event.DefaultConfig()
	assetCfg := assets.DefaultClientConfig()

	// Parse command-line flags
	addr := flag.String("addr", ":8175", "HTTP server address")
	dataDir := flag.String("data", "/data", "Data directory for the unlock store")
	staticDir := flag.String("static", "./static", "Directory for static frontend files and assets")
	storeBackend := flag.String("store", "sqlite", "Unlock store backend: sqlite or json")
	assetsURL := flag.String("assets-url", assetCfg.BaseURL, "Remote base URL for hint/answer assets (empty: read from the static dir)")
	startDate := flag.String("start-date", eventCfg.StartDate, "Event start date (YYYY-MM-DD)")
	totalDays := flag.Int("days", eventCfg.TotalDays, "Total number of days in the event window")
	timezone := flag.String("tz", eventCfg.Timezone, "IANA timezone for gate evaluation (empty: local)")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(*addr); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	// Allow overriding version via environment (e.g., injected by container build/runtime)
	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting Surprise Calendar (version: %s)...", version)

	// Resolve the event window
	eventCfg.StartDate = *startDate
	eventCfg.TotalDays = *totalDays
	eventCfg.Timezone = *timezone
	window, err := eventCfg.Window()
	if err != nil {
		log.Fatalf("Invalid event configuration: %v", err)
	}
	loc, _ := eventCfg.Location()
	evaluator := gate.NewEvaluatorWithLocation(loc)
	log.Printf("Event window: %s, %d days (day index now: %d)",
		window.StartDate.Format("2006-01-02"), window.TotalDays, window.DayIndexAt(time.Now().In(loc)))

	// Initialize the unlock store
	store, err := openStore(*storeBackend, *dataDir)
	if err != nil {
		log.Fatalf("Failed to open unlock store: %v", err)
	}
	defer store.Close()

	// Initialize the asset source
	var source assets.Source
	if *assetsURL != "" {
		assetCfg.BaseURL = *assetsURL
		source = assets.NewHTTPSource(assetCfg)
		log.Printf("Fetching hint/answer assets from %s", assetCfg.BaseURL)
	} else {
		source = assets.NewDirSource(*staticDir)
		log.Printf("Reading hint/answer assets from %s", *staticDir)
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize the challenge manager
	manager := challenge.NewManager(source, store, websocket.NewEventBroadcaster(hub))

	// Start the gate rollover scheduler
	rollover := schedule.NewRolloverScheduler(window, evaluator, store, hub)
	rollover.Start()

	// Initialize HTTP router
	router := api.NewRouter(window, evaluator, store, manager, hub, *staticDir)

	// Create HTTP server
	server := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", *addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the scheduler
	rollover.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// openStore creates the configured unlock store backend under dataDir.
func openStore(backend, dataDir string) (storage.UnlockStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	switch backend {
	case "json":
		path := filepath.Join(dataDir, "unlocks.json")
		log.Printf("Using JSON unlock store at %s", path)
		return storage.NewJSONUnlockStore(path, storage.DefaultRecordKey), nil
	default:
		path := filepath.Join(dataDir, "surprise-calendar.db")
		db, err := storage.NewDB(path)
		if err != nil {
			return nil, err
		}
		if err := storage.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Printf("Using SQLite unlock store at %s", path)
		return storage.NewUnlockRepository(db), nil
	}
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
