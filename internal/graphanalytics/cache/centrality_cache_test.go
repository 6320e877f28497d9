package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

func setupCache(t *testing.T) (*CentralityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCentralityCache(client, 10*time.Minute), mr
}

func TestCentralityCacheRoundTrip(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	results := []domain.CentralityResult{
		{CompanyName: "TSMC", PermID: 1, CentralityScore: 0.2, CentralityType: domain.CentralityPageRank, Rank: 1, Criticality: domain.TierCritical},
		{CompanyName: "Foxconn", PermID: 2, CentralityScore: 0.08, CentralityType: domain.CentralityPageRank, Rank: 2, Criticality: domain.TierHigh},
	}

	t.Run("miss before write", func(t *testing.T) {
		cached, ok, err := c.Get(ctx, "supply_chain_graph_v1", domain.CentralityPageRank, 20)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, cached)
	})

	t.Run("hit after write", func(t *testing.T) {
		require.NoError(t, c.Put(ctx, "supply_chain_graph_v1", domain.CentralityPageRank, 20, results))

		cached, ok, err := c.Get(ctx, "supply_chain_graph_v1", domain.CentralityPageRank, 20)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, results, cached)
	})

	t.Run("keys separate by projection version", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "supply_chain_graph_v2", domain.CentralityPageRank, 20)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("keys separate by topN", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "supply_chain_graph_v1", domain.CentralityPageRank, 5)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCentralityCacheTTL(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "supply_chain_graph_v1", domain.CentralityBetweenness, 15, []domain.CentralityResult{{CompanyName: "ASML"}}))

	mr.FastForward(11 * time.Minute)

	_, ok, err := c.Get(ctx, "supply_chain_graph_v1", domain.CentralityBetweenness, 15)
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire with its TTL")
}

func TestCentralityCacheInvalidate(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "supply_chain_graph_v1", domain.CentralityPageRank, 20, []domain.CentralityResult{{CompanyName: "TSMC"}}))
	require.NoError(t, c.Put(ctx, "supply_chain_graph_v2", domain.CentralityBetweenness, 15, []domain.CentralityResult{{CompanyName: "ASML"}}))
	require.NoError(t, mr.Set("unrelated:key", "keep me"))

	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx, "supply_chain_graph_v1", domain.CentralityPageRank, 20)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "supply_chain_graph_v2", domain.CentralityBetweenness, 15)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, mr.Exists("unrelated:key"), "invalidation must only touch centrality keys")
}
