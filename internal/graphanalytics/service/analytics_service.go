package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	companies "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

// Repository is the analytics persistence surface. Algorithm execution
// lives behind it; the service only validates, dispatches and composes.
type Repository interface {
	RefreshProjection(ctx context.Context) (*domain.RefreshResult, error)
	ProjectionName() string
	ShortestWeightedPath(ctx context.Context, startName, endName string) ([]domain.PathResult, error)
	AllPathsWithinHops(ctx context.Context, startName, endName string, maxHops, maxResults int) ([]domain.PathResult, error)
	RankCentrality(ctx context.Context, topN int) ([]domain.CentralityResult, error)
	BridgeCentrality(ctx context.Context, topN int) ([]domain.CentralityResult, error)
	DetectCommunities(ctx context.Context) ([]domain.CommunityGroup, error)
	MembersOfSameCommunity(ctx context.Context, targetName string) ([]companies.Company, error)
	FrenemyPairs(ctx context.Context) ([]domain.FrenemyPair, error)
	Vulnerabilities(ctx context.Context, minDownstream int) ([]domain.Vulnerability, error)
	AcquisitionTargets(ctx context.Context, minCentrality float64, maxMarketCap int64, maxResults int) ([]domain.AcquisitionTarget, error)
}

// CentralityCache holds recent rankings keyed by projection version.
type CentralityCache interface {
	Get(ctx context.Context, projection, algorithm string, topN int) ([]domain.CentralityResult, bool, error)
	Put(ctx context.Context, projection, algorithm string, topN int, results []domain.CentralityResult) error
	Invalidate(ctx context.Context) error
}

// Documented defaults filled in when a caller omits an optional limit.
const (
	defaultRankTopN         = 20
	defaultBridgeTopN       = 15
	defaultMaxHops          = 5
	defaultMaxResults       = 10
	defaultMinDownstream    = 3
	defaultMinCentrality    = 0.01
	defaultMaxMarketCap     = 50_000_000_000
	comprehensiveTopN       = 25
	acquisitionResultLimit  = 20
	agentContextCentralityN = 50
)

// AnalyticsService validates parameters, dispatches algorithm work to
// the bounded pool and composes multi-query reports.
type AnalyticsService struct {
	repo  Repository
	cache CentralityCache
	pool  *Pool
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(repo Repository, cache CentralityCache, pool *Pool) *AnalyticsService {
	return &AnalyticsService{repo: repo, cache: cache, pool: pool}
}

// ===== PATHFINDING =====

// BackupSupplierRoutes finds alternative supply routes between two
// companies, cheapest first, annotated with a derived reliability score.
func (s *AnalyticsService) BackupSupplierRoutes(ctx context.Context, startCompany, endCompany string) ([]domain.PathResult, error) {
	start, end, err := validateEndpoints(startCompany, endCompany)
	if err != nil {
		return nil, err
	}

	fut := Submit(ctx, s.pool, func(ctx context.Context) ([]domain.PathResult, error) {
		return s.repo.ShortestWeightedPath(ctx, start, end)
	})
	paths, err := fut.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return enhancePathResults(paths), nil
}

// ConstrainedPaths enumerates routes within a hop bound.
func (s *AnalyticsService) ConstrainedPaths(ctx context.Context, startCompany, endCompany string, maxHops, maxResults *int) ([]domain.PathResult, error) {
	start, end, err := validateEndpoints(startCompany, endCompany)
	if err != nil {
		return nil, err
	}
	hops, err := positiveOrDefault("maxHops", maxHops, defaultMaxHops)
	if err != nil {
		return nil, err
	}
	limit, err := positiveOrDefault("maxResults", maxResults, defaultMaxResults)
	if err != nil {
		return nil, err
	}

	fut := Submit(ctx, s.pool, func(ctx context.Context) ([]domain.PathResult, error) {
		return s.repo.AllPathsWithinHops(ctx, start, end, hops, limit)
	})
	return fut.Wait(ctx)
}

// ===== CENTRALITY =====

// CriticalNodes dispatches a rank-centrality run and returns a handle.
// Validation failures surface synchronously, before any dispatch.
func (s *AnalyticsService) CriticalNodes(ctx context.Context, topN *int) (*Future[[]domain.CentralityResult], error) {
	limit, err := positiveOrDefault("topN", topN, defaultRankTopN)
	if err != nil {
		return nil, err
	}
	return s.centrality(ctx, domain.CentralityPageRank, limit, s.repo.RankCentrality), nil
}

// BridgeNodes dispatches a betweenness run and returns a handle.
func (s *AnalyticsService) BridgeNodes(ctx context.Context, topN *int) (*Future[[]domain.CentralityResult], error) {
	limit, err := positiveOrDefault("topN", topN, defaultBridgeTopN)
	if err != nil {
		return nil, err
	}
	return s.centrality(ctx, domain.CentralityBetweenness, limit, s.repo.BridgeCentrality), nil
}

func (s *AnalyticsService) centrality(ctx context.Context, algorithm string, topN int, run func(context.Context, int) ([]domain.CentralityResult, error)) *Future[[]domain.CentralityResult] {
	return Submit(ctx, s.pool, func(ctx context.Context) ([]domain.CentralityResult, error) {
		projection := s.repo.ProjectionName()

		if cached, ok, err := s.cache.Get(ctx, projection, algorithm, topN); err != nil {
			log.Warn("centrality cache read failed", "algorithm", algorithm, "err", err)
		} else if ok {
			return cached, nil
		}

		results, err := run(ctx, topN)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Put(ctx, projection, algorithm, topN, results); err != nil {
			log.Warn("centrality cache write failed", "algorithm", algorithm, "err", err)
		}
		return results, nil
	})
}

// ComprehensiveCentrality fans out the two centrality analyses, joins
// both sides and attaches the static guidance notes.
func (s *AnalyticsService) ComprehensiveCentrality(ctx context.Context) *Future[*domain.CentralityReport] {
	// topN is a positive constant here, so validation cannot fail.
	topN := comprehensiveTopN
	rankFut, _ := s.CriticalNodes(ctx, &topN)
	bridgeFut, _ := s.BridgeNodes(ctx, &topN)

	// The join only waits on the two dispatched analyses, so it runs
	// off-pool. Joining from inside the pool would occupy a slot the
	// child tasks need and deadlock small pools.
	return Async(func() (*domain.CentralityReport, error) {
		rank, err := rankFut.Wait(ctx)
		if err != nil {
			return nil, err
		}
		bridge, err := bridgeFut.Wait(ctx)
		if err != nil {
			return nil, err
		}

		return &domain.CentralityReport{
			ReportID:           uuid.New().String(),
			PageRankResults:    rank,
			BetweennessResults: bridge,
			CombinedInsights:   combinedInsights(),
		}, nil
	})
}

// ===== COMMUNITIES =====

// DetectCommunities dispatches a full-graph community detection run.
func (s *AnalyticsService) DetectCommunities(ctx context.Context) *Future[[]domain.CommunityGroup] {
	return Submit(ctx, s.pool, func(ctx context.Context) ([]domain.CommunityGroup, error) {
		return s.repo.DetectCommunities(ctx)
	})
}

// RelatedCompanies returns the companies sharing the target's community.
func (s *AnalyticsService) RelatedCompanies(ctx context.Context, targetCompany string) ([]companies.Company, error) {
	target := strings.TrimSpace(targetCompany)
	if target == "" {
		return nil, fmt.Errorf("%w: target company name cannot be empty", domain.ErrInvalidArgument)
	}
	return s.repo.MembersOfSameCommunity(ctx, target)
}

// ===== ADVANCED ANALYTICS =====

// FrenemyRelationships returns pairs linked by both competitive and
// cooperative edges.
func (s *AnalyticsService) FrenemyRelationships(ctx context.Context) ([]domain.FrenemyPair, error) {
	return s.repo.FrenemyPairs(ctx)
}

// Vulnerabilities scans for single points of failure.
func (s *AnalyticsService) Vulnerabilities(ctx context.Context, minDownstreamImpact *int) ([]domain.Vulnerability, error) {
	threshold, err := positiveOrDefault("minDownstreamImpact", minDownstreamImpact, defaultMinDownstream)
	if err != nil {
		return nil, err
	}
	return s.repo.Vulnerabilities(ctx, threshold)
}

// AcquisitionTargets scans for high-influence, low-valuation companies.
func (s *AnalyticsService) AcquisitionTargets(ctx context.Context, minCentrality *float64, maxMarketCap *int64) ([]domain.AcquisitionTarget, error) {
	centrality := defaultMinCentrality
	if minCentrality != nil {
		if *minCentrality <= 0 {
			return nil, fmt.Errorf("%w: minCentrality must be positive", domain.ErrInvalidArgument)
		}
		centrality = *minCentrality
	}

	var capLimit int64 = defaultMaxMarketCap
	if maxMarketCap != nil {
		if *maxMarketCap <= 0 {
			return nil, fmt.Errorf("%w: maxMarketCap must be positive", domain.ErrInvalidArgument)
		}
		capLimit = *maxMarketCap
	}

	return s.repo.AcquisitionTargets(ctx, centrality, capLimit, acquisitionResultLimit)
}

// ===== PROJECTION LIFECYCLE =====

// RefreshProjection rebuilds the projection and empties the centrality
// cache so consumers never read rankings computed against dropped data.
func (s *AnalyticsService) RefreshProjection(ctx context.Context) (*domain.RefreshResult, error) {
	fut := Submit(ctx, s.pool, func(ctx context.Context) (*domain.RefreshResult, error) {
		return s.repo.RefreshProjection(ctx)
	})
	result, err := fut.Wait(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn("centrality cache invalidation failed", "err", err)
	}
	return result, nil
}

// ===== HELPERS =====

func validateEndpoints(startCompany, endCompany string) (string, string, error) {
	start := strings.TrimSpace(startCompany)
	end := strings.TrimSpace(endCompany)
	if start == "" {
		return "", "", fmt.Errorf("%w: start company name cannot be empty", domain.ErrInvalidArgument)
	}
	if end == "" {
		return "", "", fmt.Errorf("%w: end company name cannot be empty", domain.ErrInvalidArgument)
	}
	if start == end {
		return "", "", fmt.Errorf("%w: start and end companies must be different", domain.ErrInvalidArgument)
	}
	return start, end, nil
}

func positiveOrDefault(field string, value *int, fallback int) (int, error) {
	if value == nil {
		return fallback, nil
	}
	if *value <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", domain.ErrInvalidArgument, field)
	}
	return *value, nil
}

// enhancePathResults derives a reliability score from the hop count.
func enhancePathResults(paths []domain.PathResult) []domain.PathResult {
	for i := range paths {
		paths[i].ReliabilityScore = 1.0 / (1.0 + float64(paths[i].PathLength)*0.1)
	}
	return paths
}

// combinedInsights are fixed guidance notes attached to the joined
// centrality report. They are annotations, not computed findings.
func combinedInsights() []string {
	return []string{
		"Companies appearing in both PageRank and Betweenness top 10 are critically important",
		"High PageRank with low Betweenness indicates influential but not controlling position",
		"High Betweenness with low PageRank indicates strategic bottleneck position",
	}
}

// IsNotFound reports whether err marks a missing company rather than a
// genuine failure.
func IsNotFound(err error) bool {
	return errors.Is(err, companies.ErrCompanyNotFound)
}
