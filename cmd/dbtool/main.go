package main

import (
	"context"
	"database/sql"
	"flag"
	"toll-rate-service/internal/adapters/cache"
	"toll-rate-service/internal/adapters/repositories"
	"toll-rate-service/internal/adapters/source"
	"toll-rate-service/internal/config"
	"toll-rate-service/internal/platform/db"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// dbtool initializes the observation schema and loads a CSV distance table.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	seedPath := flag.String("seed", cfg.SeedPath, "CSV file with id_start,id_end,distance")
	flag.Parse()

	conn, err := db.Open(cfg.DB.Driver, cfg.DB.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := initAndSeed(ctx, conn, cfg.DB.Driver, *seedPath); err != nil {
		log.Fatal(err)
	}

	// Drop cached observations so servers pick up the new table.
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer client.Close()
		if err := cache.NewRedisObservationCache(client, nil, cfg.Redis.TTL).Invalidate(ctx); err != nil {
			log.WithError(err).Warn("cache invalidation failed")
		}
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, seedPath string) error {
	log.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Info("Schema ready.")

	log.WithField("path", seedPath).Info("Seeding database...")
	observations, err := source.NewCSVObservationSource(seedPath).ListObservations(ctx)
	if err != nil {
		log.Fatalf("reading seed failed: %v", err)
	}
	if err := repositories.SeedObservations(ctx, conn, driver, observations); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.WithField("rows", len(observations)).Info("Seeding complete.")

	return nil
}
