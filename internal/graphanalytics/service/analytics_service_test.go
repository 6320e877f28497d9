package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	companies "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

type fakeAnalyticsRepo struct {
	projection string

	rankTopN      int
	bridgeTopN    int
	pathStart     string
	pathEnd       string
	maxHops       int
	maxResults    int
	minDownstream int
	minCentrality float64
	maxMarketCap  int64
	refreshCalls  int

	rankResults   []domain.CentralityResult
	bridgeResults []domain.CentralityResult
	pathResults   []domain.PathResult
	err           error
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{projection: "supply_chain_graph_v1"}
}

func (f *fakeAnalyticsRepo) RefreshProjection(_ context.Context) (*domain.RefreshResult, error) {
	f.refreshCalls++
	return &domain.RefreshResult{GraphName: f.projection, NodeCount: 10, RelationshipCount: 20}, f.err
}

func (f *fakeAnalyticsRepo) ProjectionName() string { return f.projection }

func (f *fakeAnalyticsRepo) ShortestWeightedPath(_ context.Context, start, end string) ([]domain.PathResult, error) {
	f.pathStart, f.pathEnd = start, end
	return f.pathResults, f.err
}

func (f *fakeAnalyticsRepo) AllPathsWithinHops(_ context.Context, start, end string, maxHops, maxResults int) ([]domain.PathResult, error) {
	f.pathStart, f.pathEnd = start, end
	f.maxHops, f.maxResults = maxHops, maxResults
	return f.pathResults, f.err
}

func (f *fakeAnalyticsRepo) RankCentrality(_ context.Context, topN int) ([]domain.CentralityResult, error) {
	f.rankTopN = topN
	return f.rankResults, f.err
}

func (f *fakeAnalyticsRepo) BridgeCentrality(_ context.Context, topN int) ([]domain.CentralityResult, error) {
	f.bridgeTopN = topN
	return f.bridgeResults, f.err
}

func (f *fakeAnalyticsRepo) DetectCommunities(_ context.Context) ([]domain.CommunityGroup, error) {
	return []domain.CommunityGroup{{CommunityID: 1, Size: 2}}, f.err
}

func (f *fakeAnalyticsRepo) MembersOfSameCommunity(_ context.Context, target string) ([]companies.Company, error) {
	return []companies.Company{{Name: target}}, f.err
}

func (f *fakeAnalyticsRepo) FrenemyPairs(_ context.Context) ([]domain.FrenemyPair, error) {
	return []domain.FrenemyPair{{Company1: "Samsung", Company2: "Apple"}}, f.err
}

func (f *fakeAnalyticsRepo) Vulnerabilities(_ context.Context, minDownstream int) ([]domain.Vulnerability, error) {
	f.minDownstream = minDownstream
	return nil, f.err
}

func (f *fakeAnalyticsRepo) AcquisitionTargets(_ context.Context, minCentrality float64, maxMarketCap int64, _ int) ([]domain.AcquisitionTarget, error) {
	f.minCentrality, f.maxMarketCap = minCentrality, maxMarketCap
	return nil, f.err
}

type fakeCache struct {
	entries     map[string][]domain.CentralityResult
	gets, puts  int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]domain.CentralityResult{}}
}

func (f *fakeCache) key(projection, algorithm string, topN int) string {
	return fmt.Sprintf("%s:%s:%d", projection, algorithm, topN)
}

func (f *fakeCache) Get(_ context.Context, projection, algorithm string, topN int) ([]domain.CentralityResult, bool, error) {
	f.gets++
	cached, ok := f.entries[f.key(projection, algorithm, topN)]
	return cached, ok, nil
}

func (f *fakeCache) Put(_ context.Context, projection, algorithm string, topN int, results []domain.CentralityResult) error {
	f.puts++
	f.entries[f.key(projection, algorithm, topN)] = results
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context) error {
	f.invalidated++
	f.entries = map[string][]domain.CentralityResult{}
	return nil
}

func newTestService(repo *fakeAnalyticsRepo, cache *fakeCache) *AnalyticsService {
	return NewAnalyticsService(repo, cache, NewPool(4, time.Second))
}

func TestBackupSupplierRoutes(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	repo.pathResults = []domain.PathResult{
		{Source: "TSMC", Target: "Apple", PathLength: 2, TotalCost: 1.5},
		{Source: "TSMC", Target: "Apple", PathLength: 4, TotalCost: 3.0},
	}
	svc := newTestService(repo, newFakeCache())

	t.Run("annotates paths with reliability", func(t *testing.T) {
		paths, err := svc.BackupSupplierRoutes(context.Background(), "TSMC", "Apple")
		require.NoError(t, err)
		require.Len(t, paths, 2)
		assert.InDelta(t, 1.0/1.2, paths[0].ReliabilityScore, 1e-9)
		assert.InDelta(t, 1.0/1.4, paths[1].ReliabilityScore, 1e-9)
	})

	t.Run("trims endpoint names", func(t *testing.T) {
		_, err := svc.BackupSupplierRoutes(context.Background(), " TSMC ", " Apple ")
		require.NoError(t, err)
		assert.Equal(t, "TSMC", repo.pathStart)
		assert.Equal(t, "Apple", repo.pathEnd)
	})

	t.Run("rejects blank endpoints", func(t *testing.T) {
		_, err := svc.BackupSupplierRoutes(context.Background(), "", "Apple")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("rejects identical endpoints", func(t *testing.T) {
		_, err := svc.BackupSupplierRoutes(context.Background(), "Apple", " Apple ")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestConstrainedPaths(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	svc := newTestService(repo, newFakeCache())

	t.Run("applies documented defaults", func(t *testing.T) {
		_, err := svc.ConstrainedPaths(context.Background(), "TSMC", "Apple", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 5, repo.maxHops)
		assert.Equal(t, 10, repo.maxResults)
	})

	t.Run("forwards explicit bounds", func(t *testing.T) {
		hops, limit := 3, 7
		_, err := svc.ConstrainedPaths(context.Background(), "TSMC", "Apple", &hops, &limit)
		require.NoError(t, err)
		assert.Equal(t, 3, repo.maxHops)
		assert.Equal(t, 7, repo.maxResults)
	})

	t.Run("rejects non-positive bounds", func(t *testing.T) {
		zero := 0
		_, err := svc.ConstrainedPaths(context.Background(), "TSMC", "Apple", &zero, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		negative := -2
		_, err = svc.ConstrainedPaths(context.Background(), "TSMC", "Apple", nil, &negative)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestCriticalNodes(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	repo.rankResults = []domain.CentralityResult{{CompanyName: "TSMC", CentralityScore: 0.2, Rank: 1}}
	cache := newFakeCache()
	svc := newTestService(repo, cache)

	t.Run("defaults topN and caches the run", func(t *testing.T) {
		fut, err := svc.CriticalNodes(context.Background(), nil)
		require.NoError(t, err)

		results, err := fut.Wait(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 20, repo.rankTopN)
		assert.Equal(t, 1, cache.puts)
	})

	t.Run("serves repeat queries from cache", func(t *testing.T) {
		repo.rankTopN = 0
		fut, err := svc.CriticalNodes(context.Background(), nil)
		require.NoError(t, err)

		results, err := fut.Wait(context.Background())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Zero(t, repo.rankTopN, "repo must not be hit on a cache hit")
	})

	t.Run("rejects non-positive topN before dispatch", func(t *testing.T) {
		zero := 0
		_, err := svc.CriticalNodes(context.Background(), &zero)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestBridgeNodes(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	svc := newTestService(repo, newFakeCache())

	fut, err := svc.BridgeNodes(context.Background(), nil)
	require.NoError(t, err)
	_, err = fut.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, repo.bridgeTopN)
}

func TestComprehensiveCentrality(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	repo.rankResults = []domain.CentralityResult{{CompanyName: "TSMC"}}
	repo.bridgeResults = []domain.CentralityResult{{CompanyName: "Foxconn"}}
	svc := newTestService(repo, newFakeCache())

	report, err := svc.ComprehensiveCentrality(context.Background()).Wait(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, 25, repo.rankTopN)
	assert.Equal(t, 25, repo.bridgeTopN)
	require.Len(t, report.PageRankResults, 1)
	require.Len(t, report.BetweennessResults, 1)
	assert.Len(t, report.CombinedInsights, 3)
}

func TestComprehensiveCentralityOnSingleSlotPool(t *testing.T) {
	// The join must not hold a pool slot while its two child analyses
	// queue for one; with a single slot that would deadlock until the
	// task deadline.
	repo := newFakeAnalyticsRepo()
	repo.rankResults = []domain.CentralityResult{{CompanyName: "TSMC"}}
	repo.bridgeResults = []domain.CentralityResult{{CompanyName: "Foxconn"}}
	svc := NewAnalyticsService(repo, newFakeCache(), NewPool(1, 50*time.Millisecond))

	for i := 0; i < 10; i++ {
		report, err := svc.ComprehensiveCentrality(context.Background()).Wait(context.Background())
		require.NoError(t, err)
		require.Len(t, report.PageRankResults, 1)
		require.Len(t, report.BetweennessResults, 1)
	}
}

func TestRelatedCompanies(t *testing.T) {
	svc := newTestService(newFakeAnalyticsRepo(), newFakeCache())

	t.Run("rejects blank target", func(t *testing.T) {
		_, err := svc.RelatedCompanies(context.Background(), "  ")
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("returns community members", func(t *testing.T) {
		members, err := svc.RelatedCompanies(context.Background(), "TSMC")
		require.NoError(t, err)
		require.Len(t, members, 1)
	})
}

func TestVulnerabilities(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	svc := newTestService(repo, newFakeCache())

	t.Run("defaults the downstream threshold", func(t *testing.T) {
		_, err := svc.Vulnerabilities(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 3, repo.minDownstream)
	})

	t.Run("rejects non-positive threshold", func(t *testing.T) {
		zero := 0
		_, err := svc.Vulnerabilities(context.Background(), &zero)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestAcquisitionTargets(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	svc := newTestService(repo, newFakeCache())

	t.Run("applies defaults", func(t *testing.T) {
		_, err := svc.AcquisitionTargets(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.01, repo.minCentrality)
		assert.Equal(t, int64(50_000_000_000), repo.maxMarketCap)
	})

	t.Run("rejects non-positive bounds", func(t *testing.T) {
		negative := -0.5
		_, err := svc.AcquisitionTargets(context.Background(), &negative, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		var zeroCap int64
		_, err = svc.AcquisitionTargets(context.Background(), nil, &zeroCap)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestRefreshProjection(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	cache := newFakeCache()
	cache.entries["stale"] = []domain.CentralityResult{{CompanyName: "stale"}}
	svc := newTestService(repo, cache)

	result, err := svc.RefreshProjection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.NodeCount)
	assert.Equal(t, 1, repo.refreshCalls)
	assert.Equal(t, 1, cache.invalidated)
	assert.Empty(t, cache.entries)
}

func TestPoolTimeout(t *testing.T) {
	pool := NewPool(1, 20*time.Millisecond)

	fut := Submit(context.Background(), pool, func(ctx context.Context) (int, error) {
		select {
		case <-time.After(time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})

	_, err := fut.Wait(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(2, time.Second)

	running := make(chan struct{}, 4)
	release := make(chan struct{})

	var futures []*Future[int]
	for i := 0; i < 4; i++ {
		futures = append(futures, Submit(context.Background(), pool, func(ctx context.Context) (int, error) {
			running <- struct{}{}
			<-release
			return 0, nil
		}))
	}

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, running, 2, "only pool-size tasks may run at once")

	close(release)
	for _, fut := range futures {
		_, err := fut.Wait(context.Background())
		require.NoError(t, err)
	}
}

func TestFutureWaitHonorsCancellation(t *testing.T) {
	pool := NewPool(1, time.Second)

	release := make(chan struct{})
	defer close(release)

	fut := Submit(context.Background(), pool, func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := fut.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
