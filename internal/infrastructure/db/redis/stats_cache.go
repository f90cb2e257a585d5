package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/pkg/metrics"
)

const defaultStatsTTL = 5 * time.Minute

// setIfGeneration writes the stats entry only while the owner's generation
// counter still holds the value read before the stats were computed.
//
//	KEYS[1] generation key, KEYS[2] stats key
//	ARGV[1] expected generation, ARGV[2] payload, ARGV[3] ttl in ms
var setIfGeneration = redis.NewScript(`
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// StatsCache stores computed inventory stats per owner.
// Key format: stats:{<owner_id>} for the entry, stats_gen:{<owner_id>} for
// the generation counter. The shared hash tag keeps both in one cluster slot.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache wrapping the given Redis client. A
// non-positive ttl falls back to defaultStatsTTL.
func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached stats for ownerID and whether they were present.
func (c *StatsCache) Get(ctx context.Context, ownerID string) (*domain.InventoryStats, bool, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.InventoryStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("stats cache decode: %w", err)
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &stats, true, nil
}

// Generation returns the owner's invalidation counter, 0 when never invalidated.
func (c *StatsCache) Generation(ctx context.Context, ownerID string) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stats cache generation: %w", err)
	}
	return gen, nil
}

// Set stores stats for ownerID (expires after the configured ttl) unless the
// owner was invalidated after generation was read. It reports whether the
// entry was written.
func (c *StatsCache) Set(ctx context.Context, ownerID string, generation int64, stats domain.InventoryStats) (bool, error) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return false, fmt.Errorf("stats cache encode: %w", err)
	}

	keys := []string{c.generationKey(ownerID), c.key(ownerID)}
	written, err := setIfGeneration.Run(ctx, c.client, keys, generation, raw, c.ttl.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("stats cache set: %w", err)
	}
	if written == 0 {
		metrics.StatsCacheTotal.WithLabelValues("stale").Inc()
		return false, nil
	}
	return true, nil
}

// Invalidate advances the owner's generation, then drops the cached entry.
// A Set racing with it either lands before the drop or is refused.
func (c *StatsCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := c.client.Incr(ctx, c.generationKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("stats cache invalidate: %w", err)
	}
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

func (c *StatsCache) key(ownerID string) string {
	return fmt.Sprintf("stats:{%s}", ownerID)
}

func (c *StatsCache) generationKey(ownerID string) string {
	return fmt.Sprintf("stats_gen:{%s}", ownerID)
}
