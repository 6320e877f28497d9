package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/supplygraph-labs/graph-analytics-backend/config"
	storage "github.com/supplygraph-labs/graph-analytics-backend/internal/storage/neo4j"
)

// OpenNeo4j connects to the graph store and verifies connectivity
// before handing the client out.
func OpenNeo4j(ctx context.Context, cfg config.Neo4jConfig) (*storage.Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("NEO4J_URI is not set")
	}

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := storage.NewClient(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("neo4j connect: %w", err)
	}

	return client, nil
}

// OpenRedis connects to the cache and pings it.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
