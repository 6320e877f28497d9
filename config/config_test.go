package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 60*time.Second, cfg.Analytics.AlgorithmTimeout)
	assert.Equal(t, 4, cfg.Analytics.WorkerPoolSize)
	assert.Equal(t, 10*time.Minute, cfg.Analytics.CacheTTL)
	assert.Equal(t, "0 0 0 * * *", cfg.Analytics.RefreshCronSpec)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NEO4J_URI", "neo4j://graph:7687")
	t.Setenv("ALGO_TIMEOUT", "30s")
	t.Setenv("ANALYTICS_WORKERS", "8")
	t.Setenv("ALGO_RATE_LIMIT", "5.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "neo4j://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, 30*time.Second, cfg.Analytics.AlgorithmTimeout)
	assert.Equal(t, 8, cfg.Analytics.WorkerPoolSize)
	assert.Equal(t, 5.5, cfg.Analytics.RateLimitPerSec)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ALGO_TIMEOUT", "soon")
	t.Setenv("ANALYTICS_WORKERS", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.Analytics.AlgorithmTimeout)
	assert.Equal(t, 4, cfg.Analytics.WorkerPoolSize)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Analytics.WorkerPoolSize = 0
	assert.Error(t, cfg.Validate())
}
