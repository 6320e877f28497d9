package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

const centralityKeyPrefix = "graph:centrality:" // graph:centrality:{projection}:{algorithm}:{topN}

// CentralityCache keeps recent centrality rankings in Redis so repeated
// dashboard reads do not re-run the algorithms. Entries are keyed by the
// projection version, so a refresh naturally starts from a cold cache
// while stale entries age out through their TTL.
type CentralityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCentralityCache creates a cache with the given entry TTL.
func NewCentralityCache(client *redis.Client, ttl time.Duration) *CentralityCache {
	return &CentralityCache{client: client, ttl: ttl}
}

// Get returns the cached ranking for (projection, algorithm, topN), or
// (nil, false) on a miss. Cache failures are reported as misses with the
// error for the caller to log; the caller falls through to the store.
func (c *CentralityCache) Get(ctx context.Context, projection, algorithm string, topN int) ([]domain.CentralityResult, bool, error) {
	data, err := c.client.Get(ctx, c.key(projection, algorithm, topN)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read centrality cache: %w", err)
	}

	var results []domain.CentralityResult
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached centrality: %w", err)
	}
	return results, true, nil
}

// Put stores a ranking under the entry TTL.
func (c *CentralityCache) Put(ctx context.Context, projection, algorithm string, topN int, results []domain.CentralityResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal centrality results: %w", err)
	}

	if err := c.client.Set(ctx, c.key(projection, algorithm, topN), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write centrality cache: %w", err)
	}
	return nil
}

// Invalidate removes every cached ranking, across projection versions.
// Called after a projection refresh so consumers never read rankings
// computed against dropped data.
func (c *CentralityCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, centralityKeyPrefix+"*", 0).Iterator()

	pipe := c.client.Pipeline()
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan centrality cache keys: %w", err)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate centrality cache: %w", err)
	}
	return nil
}

func (c *CentralityCache) key(projection, algorithm string, topN int) string {
	return fmt.Sprintf("%s%s:%s:%d", centralityKeyPrefix, projection, algorithm, topN)
}
