package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"toll-rate-service/internal/domain"

	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTP struct {
		Port string
	}
	DB struct {
		Driver string
		URL    string
	}
	Redis struct {
		// Empty disables the observation cache.
		Addr string
		TTL  time.Duration
	}
	// When set, observations are read from this CSV instead of the DB.
	SourceCSV string
	SeedPath  string
	Tolls     struct {
		Seed  uint64
		Rates domain.VehicleRateTable
	}
	LogLevel logrus.Level
}

// Load reads the configuration from the environment. Malformed values fail
// instead of falling back to defaults.
func Load() (Config, error) {
	var cfg Config
	var err error

	cfg.HTTP.Port = Get("PORT", "8080")
	cfg.DB.Driver = strings.ToLower(Get("DB_DRIVER", "sqlite"))
	cfg.DB.URL = Get("DATABASE_URL", "data/app.db")
	cfg.Redis.Addr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.SourceCSV = strings.TrimSpace(os.Getenv("SOURCE_CSV"))
	cfg.SeedPath = Get("SEED_PATH", "data/seeds/distances.csv")

	if cfg.Redis.TTL, err = time.ParseDuration(Get("CACHE_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("load config: CACHE_TTL: %w", err)
	}
	if cfg.Redis.TTL < 0 {
		return Config{}, fmt.Errorf("load config: CACHE_TTL must not be negative: %s", cfg.Redis.TTL)
	}

	if cfg.Tolls.Seed, err = strconv.ParseUint(Get("TOLL_SEED", "42"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("load config: TOLL_SEED: %w", err)
	}

	cfg.Tolls.Rates = domain.DefaultVehicleRates()
	if v := strings.TrimSpace(os.Getenv("VEHICLE_RATES")); v != "" {
		if cfg.Tolls.Rates, err = domain.ParseVehicleRates(v); err != nil {
			return Config{}, fmt.Errorf("load config: VEHICLE_RATES: %w", err)
		}
	}

	if cfg.LogLevel, err = logrus.ParseLevel(Get("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("load config: LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
