package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyFromProps(t *testing.T) {
	t.Run("maps full property set", func(t *testing.T) {
		ingested := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		c := CompanyFromProps(map[string]any{
			"permid":             int64(4295905573),
			"name":               "Taiwan Semiconductor",
			"is_final_assembler": false,
			"match_score":        0.95,
			"industry_sector":    "Semiconductors",
			"country":            "Taiwan",
			"market_cap":         int64(500_000_000_000),
			"revenue":            int64(70_000_000_000),
			"ingestion_date":     ingested,
			"pagerank_score":     0.18,
			"community_id":       int64(7),
		})

		assert.Equal(t, int64(4295905573), c.PermID)
		assert.Equal(t, "Taiwan Semiconductor", c.Name)
		assert.False(t, c.IsFinalAssembler)
		assert.Equal(t, 0.95, c.MatchScore)
		require.NotNil(t, c.IngestionDate)
		assert.Equal(t, ingested, *c.IngestionDate)
		require.NotNil(t, c.PagerankScore)
		assert.Equal(t, 0.18, *c.PagerankScore)
		require.NotNil(t, c.CommunityID)
		assert.Equal(t, int64(7), *c.CommunityID)
		assert.Nil(t, c.BetweennessCentrality)
	})

	t.Run("missing properties become zero values", func(t *testing.T) {
		c := CompanyFromProps(map[string]any{"name": "Foxconn"})
		assert.Equal(t, "Foxconn", c.Name)
		assert.Zero(t, c.PermID)
		assert.Zero(t, c.MatchScore)
		assert.Nil(t, c.PagerankScore)
		assert.Nil(t, c.IngestionDate)
	})

	t.Run("numeric props tolerate float encoding", func(t *testing.T) {
		c := CompanyFromProps(map[string]any{
			"permid":     float64(12345),
			"market_cap": float64(2e9),
		})
		assert.Equal(t, int64(12345), c.PermID)
		assert.Equal(t, int64(2_000_000_000), c.MarketCap)
	})
}

func TestIsCriticalNode(t *testing.T) {
	score := 0.12
	c := Company{PagerankScore: &score}
	assert.True(t, c.IsCriticalNode())

	low := 0.01
	c.PagerankScore = &low
	assert.False(t, c.IsCriticalNode())

	c.PagerankScore = nil
	assert.False(t, c.IsCriticalNode())
}
