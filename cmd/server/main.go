/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the perishable inventory advisory server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and environment config
  2. Open the ledger store (SQLite by default, Postgres when DATABASE_URL
     is set)
  3. Wire the aggregator, forecast engine, and alert publisher
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: advisor.db, ":memory:" works)

ENVIRONMENT:
  DATABASE_URL, KAFKA_BROKERS, KAFKA_TOPIC_ALERTS, DATE_LAYOUT,
  DONATE_DEMAND_CEILING - see config package.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, drain active requests
  (30s timeout), close the store and publisher, exit.
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

	"github.com/greenshelf/advisory-engine/api"
	"github.com/greenshelf/advisory-engine/config"
	"github.com/greenshelf/advisory-engine/engine"
	"github.com/greenshelf/advisory-engine/events"
	"github.com/greenshelf/advisory-engine/forecast"
	"github.com/greenshelf/advisory-engine/leaderboard"
	"github.com/greenshelf/advisory-engine/store/postgres"
	"github.com/greenshelf/advisory-engine/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "", "SQLite database path (overrides SQLITE_PATH)")
	flag.Parse()

	cfg := config.Load()
	if *dbPath != "" {
		cfg.SQLitePath = *dbPath
	}

	// Ledger store: Postgres when DATABASE_URL is set, SQLite otherwise.
	var (
		store    leaderboard.Store
		closeFns []func() error
	)
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize postgres: %v", err)
		}
		store = pg
		closeFns = append(closeFns, pg.Close)
	} else {
		sq, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		store = sq
		closeFns = append(closeFns, sq.Close)
	}

	publisher := events.NewAlertPublisher(cfg.KafkaBrokers, cfg.KafkaTopicAlerts)
	closeFns = append(closeFns, publisher.Close)

	aggregator := leaderboard.NewAggregator(
		leaderboard.NewLedger(store),
		engine.NewWeightedSustainabilityScorer(),
	)

	handler := api.NewHandler(
		aggregator,
		forecast.NewEngine(engine.NewTrendForecaster()),
		engine.NewLinearDemandModel(),
		publisher,
		cfg.DateLayout,
	)
	handler.DonateDemandCeiling = cfg.DonateDemandCeiling

	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	for _, closeFn := range closeFns {
		if err := closeFn(); err != nil {
			log.Printf("Close failed: %v", err)
		}
	}

	log.Println("Server stopped")
}
