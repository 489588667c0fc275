package config

import (
	"testing"
	"time"
	"toll-rate-service/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "REDIS_ADDR", "CACHE_TTL", "SOURCE_CSV", "SEED_PATH", "TOLL_SEED", "VEHICLE_RATES", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "data/app.db", cfg.DB.URL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, uint64(42), cfg.Tolls.Seed)
	assert.Equal(t, domain.DefaultVehicleRates().Rates(), cfg.Tolls.Rates.Rates())
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "PGX")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("TOLL_SEED", "7")
	t.Setenv("VEHICLE_RATES", "car:1.5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "pgx", cfg.DB.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, uint64(7), cfg.Tolls.Seed)
	m, ok := cfg.Tolls.Rates.Multiplier(domain.VehicleCar)
	require.True(t, ok)
	assert.Equal(t, 1.5, m)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := map[string]string{
		"CACHE_TTL":     "soon",
		"TOLL_SEED":     "-1",
		"VEHICLE_RATES": "car",
		"LOG_LEVEL":     "loud",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)

			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestGet(t *testing.T) {
	t.Setenv("TOLL_TEST_KEY", "  value ")
	assert.Equal(t, "value", Get("TOLL_TEST_KEY", "x"))

	t.Setenv("TOLL_TEST_KEY", "   ")
	assert.Equal(t, "x", Get("TOLL_TEST_KEY", "x"))
}
