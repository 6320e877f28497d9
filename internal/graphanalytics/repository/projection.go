package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
	storage "github.com/supplygraph-labs/graph-analytics-backend/internal/storage/neo4j"
)

const projectionPrefix = "supply_chain_graph_v"

// ProjectionManager owns the named in-memory graph the algorithm
// procedures run against. Refreshes are double-buffered: a new projection
// is built under the next versioned name, the current-name reference is
// swapped atomically, and the displaced generation is kept alive until
// the refresh after that. Readers always resolve a complete projection,
// including readers that picked up the old name just before a swap.
type ProjectionManager struct {
	db storage.Runner

	mu      sync.Mutex // serializes refreshes
	version int
	stale   string       // displaced generation, dropped on the next refresh
	current atomic.Value // string, the active projection name
}

// NewProjectionManager creates a manager whose first refresh will build
// version 1. Algorithm calls issued before any refresh fail in the store;
// callers are expected to refresh at startup (the worker does this).
func NewProjectionManager(db storage.Runner) *ProjectionManager {
	m := &ProjectionManager{db: db}
	m.current.Store(projectionPrefix + "1")
	return m
}

// Current returns the name of the active projection.
func (m *ProjectionManager) Current() string {
	return m.current.Load().(string)
}

// Refresh builds the next projection version, recomputes the persisted
// score annotations, swaps the active name, and retires the previous
// projection. The generation displaced two refreshes ago is dropped
// here, so a reader that resolved the old name just before the swap can
// still finish against it.
func (m *ProjectionManager) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	previous := m.Current()
	m.version++
	next := fmt.Sprintf("%s%d", projectionPrefix, m.version)
	if next == previous {
		m.version++
		next = fmt.Sprintf("%s%d", projectionPrefix, m.version)
	}

	if m.stale != "" {
		m.drop(ctx, m.stale)
		m.stale = ""
	}

	// A crashed refresh or a restarted process can leave a graph under
	// the next name; building over it would fail.
	m.drop(ctx, next)

	nodeCount, relCount, err := m.project(ctx, next)
	if err != nil {
		return nil, err
	}

	// Persist the derived annotations so plain Cypher queries (same
	// community, acquisition targets) can rely on them.
	if err := m.writeScores(ctx, next); err != nil {
		m.drop(ctx, next)
		return nil, err
	}

	m.current.Store(next)
	if previous != next {
		m.stale = previous
	}

	log.Info("projection refreshed", "graph", next, "nodes", nodeCount, "relationships", relCount)

	return &domain.RefreshResult{
		RefreshID:         uuid.New().String(),
		GraphName:         next,
		NodeCount:         nodeCount,
		RelationshipCount: relCount,
		CompletedAt:       time.Now().UTC(),
	}, nil
}

func (m *ProjectionManager) project(ctx context.Context, name string) (int64, int64, error) {
	const q = `
CALL gds.graph.project(
    $graphName,
    'Company',
    {
        SUPPLY_COMPONENTS: {
            orientation: 'NATURAL',
            properties: {
                reliability_score: {defaultValue: 1.0},
                confidence: {defaultValue: 1.0}
            }
        },
        MANUFACTURES_FOR: {
            orientation: 'NATURAL'
        },
        COMPETES_WITH: {
            orientation: 'UNDIRECTED',
            properties: {strength: {defaultValue: 1.0}}
        },
        DESIGN_CHIPS_FOR: {
            orientation: 'NATURAL'
        },
        PARTNER_WITH: {
            orientation: 'UNDIRECTED'
        }
    }
)
YIELD graphName, nodeCount, relationshipCount
RETURN graphName, nodeCount, relationshipCount`

	result, err := m.db.Run(ctx, q, map[string]any{"graphName": name})
	if err != nil {
		return 0, 0, fmt.Errorf("projection build failed: %w", err)
	}
	if len(result.Records) == 0 {
		return 0, 0, fmt.Errorf("projection build returned no rows")
	}

	rec := result.Records[0]
	nodes, _ := rec.Get("nodeCount")
	rels, _ := rec.Get("relationshipCount")
	nodeCount, _ := nodes.(int64)
	relCount, _ := rels.(int64)
	return nodeCount, relCount, nil
}

func (m *ProjectionManager) writeScores(ctx context.Context, name string) error {
	const pagerank = `
CALL gds.pageRank.write($graphName, {
    writeProperty: 'pagerank_score',
    maxIterations: 20,
    dampingFactor: 0.85
})
YIELD nodePropertiesWritten, ranIterations
RETURN nodePropertiesWritten, ranIterations`

	const louvain = `
CALL gds.louvain.write($graphName, {
    writeProperty: 'community_id',
    maxIterations: 10,
    tolerance: 0.0001
})
YIELD communityCount
RETURN communityCount`

	if _, err := m.db.Run(ctx, pagerank, map[string]any{"graphName": name}); err != nil {
		return fmt.Errorf("pagerank write failed: %w", err)
	}
	if _, err := m.db.Run(ctx, louvain, map[string]any{"graphName": name}); err != nil {
		return fmt.Errorf("louvain write failed: %w", err)
	}
	return nil
}

func (m *ProjectionManager) drop(ctx context.Context, name string) {
	const q = `CALL gds.graph.drop($graphName, false)`

	if _, err := m.db.Run(ctx, q, map[string]any{"graphName": name}); err != nil {
		// The projection may never have been built; nothing to clean up.
		log.Debug("projection drop skipped", "graph", name, "err", err)
	}
}
