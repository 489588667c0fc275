package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"toll-rate-service/internal/adapters/cache"
	"toll-rate-service/internal/adapters/repositories"
	"toll-rate-service/internal/adapters/source"
	"toll-rate-service/internal/api"
	"toll-rate-service/internal/config"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/platform/db"
	"toll-rate-service/internal/ports"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires the observation source (CSV or SQL, optionally behind Redis)
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSource()

	router := api.NewRouter(api.RouterConfig{
		Source:      src,
		Rates:       cfg.Tolls.Rates,
		Windows:     domain.DefaultTimeWindows(),
		DefaultSeed: cfg.Tolls.Seed,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown failed")
		}
	}()

	log.WithField("addr", srv.Addr).Info("Server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openSource returns the configured observation source and a func that
// releases its connections.
func openSource(ctx context.Context, cfg config.Config) (ports.ObservationSource, func(), error) {
	if cfg.SourceCSV != "" {
		log.WithField("path", cfg.SourceCSV).Info("Reading observations from CSV")
		return source.NewCSVObservationSource(cfg.SourceCSV), func() {}, nil
	}

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.URL)
	if err != nil {
		return nil, nil, err
	}

	// Local sqlite runs get the schema and demo data on startup.
	if cfg.DB.Driver == db.DriverSQLite {
		if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
	}

	var src ports.ObservationSource = repositories.NewSQLObservationRepository(conn)
	closers := []func() error{conn.Close}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable; cache reads will fall through")
		}
		src = cache.NewRedisObservationCache(client, src, cfg.Redis.TTL)
		closers = append(closers, client.Close)
		log.WithFields(log.Fields{"addr": cfg.Redis.Addr, "ttl": cfg.Redis.TTL}).Info("Observation cache enabled")
	}

	return src, func() {
		for _, c := range closers {
			_ = c()
		}
	}, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	observations, err := source.NewCSVObservationSource(seedPath).ListObservations(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedObservations(ctx, conn, db.DriverSQLite, observations); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
