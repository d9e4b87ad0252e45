/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the onboarding engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load config (config.yaml + ONBOARDING_* env vars)
  2. Apply command-line flag overrides
  3. Initialize the configured store (memory, sqlite, or postgres)
  4. Create engine and API handler
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config; use ":memory:" for
           an in-memory database)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/onboarding.db"

  # Run against postgres
  ONBOARDING_DB_DRIVER=postgres ONBOARDING_DB_URL=postgres://... ./server

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - config/config.go: Configuration loading
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bfi/onboarding-engine/api"
	"github.com/bfi/onboarding-engine/config"
	"github.com/bfi/onboarding-engine/onboarding"
	memstore "github.com/bfi/onboarding-engine/onboarding/store"
	"github.com/bfi/onboarding-engine/store/postgres"
	"github.com/bfi/onboarding-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flag overrides
	port := flag.Int("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DB.Path, "SQLite database path")
	flag.Parse()

	// Initialize store
	var (
		store   onboarding.TxStore
		cleanup func()
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store = memstore.NewTxMemory()
		cleanup = func() {}
	case config.DriverSQLite:
		s, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		store = s
		cleanup = func() { s.Close() }
	case config.DriverPostgres:
		s, err := postgres.New(context.Background(), cfg.DB.URL)
		if err != nil {
			log.Fatalf("Failed to connect to postgres: %v", err)
		}
		store = s
		cleanup = s.Close
	default:
		log.Fatalf("Unknown db driver: %s", cfg.DB.Driver)
	}
	defer cleanup()

	// Initialize engine and handler
	engine := onboarding.New(store)
	handler := api.NewHandler(engine)

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
