package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"toll-rate-service/internal/domain"
	"toll-rate-service/internal/platform/obs"
	"toll-rate-service/internal/ports"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const DefaultObservationKey = "toll:observations"

type cachedObservation struct {
	IDStart  int64   `json:"id_start"`
	IDEnd    int64   `json:"id_end"`
	Distance float64 `json:"distance"`
}

// RedisObservationCache is a read-through cache in front of another
// ObservationSource. The whole table is stored as one JSON value under Key.
// Redis failures are logged and fall through to Next.
type RedisObservationCache struct {
	Client *redis.Client
	Next   ports.ObservationSource
	Key    string
	TTL    time.Duration

	group singleflight.Group
}

func NewRedisObservationCache(client *redis.Client, next ports.ObservationSource, ttl time.Duration) *RedisObservationCache {
	return &RedisObservationCache{Client: client, Next: next, Key: DefaultObservationKey, TTL: ttl}
}

func (c *RedisObservationCache) ListObservations(ctx context.Context) (_ []domain.DistanceObservation, err error) {
	defer obs.Time(ctx, "cache.ListObservations")(&err)

	if c.Next == nil {
		return nil, errors.New("observation cache: next source is nil")
	}
	if c.Client == nil {
		return c.Next.ListObservations(ctx)
	}

	cached, hit, err := c.get(ctx)
	if err != nil {
		obs.Logger(ctx).WithError(err).Warn("observation cache read failed")
	}
	if hit {
		return cached, nil
	}

	// Concurrent misses share one load from Next.
	v, err, _ := c.group.Do(c.Key, func() (any, error) {
		loaded, err := c.Next.ListObservations(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.set(ctx, loaded); err != nil {
			obs.Logger(ctx).WithError(err).Warn("observation cache write failed")
		}
		return loaded, nil
	})
	if err != nil {
		return nil, fmt.Errorf("observation cache: load: %w", err)
	}

	return append([]domain.DistanceObservation(nil), v.([]domain.DistanceObservation)...), nil
}

// Invalidate drops the cached table, e.g. after reseeding.
func (c *RedisObservationCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return nil
	}
	if err := c.Client.Del(ctx, c.Key).Err(); err != nil {
		return fmt.Errorf("observation cache: invalidate %q: %w", c.Key, err)
	}
	return nil
}

func (c *RedisObservationCache) get(ctx context.Context) ([]domain.DistanceObservation, bool, error) {
	raw, err := c.Client.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", c.Key, err)
	}

	var rows []cachedObservation
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false, fmt.Errorf("decode %q: %w", c.Key, err)
	}

	out := make([]domain.DistanceObservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DistanceObservation{
			Origin:      domain.LocationID(r.IDStart),
			Destination: domain.LocationID(r.IDEnd),
			Distance:    r.Distance,
		})
	}
	return out, true, nil
}

func (c *RedisObservationCache) set(ctx context.Context, observations []domain.DistanceObservation) error {
	rows := make([]cachedObservation, 0, len(observations))
	for _, o := range observations {
		rows = append(rows, cachedObservation{IDStart: int64(o.Origin), IDEnd: int64(o.Destination), Distance: o.Distance})
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %q: %w", c.Key, err)
	}
	if err := c.Client.Set(ctx, c.Key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("set %q: %w", c.Key, err)
	}
	return nil
}
