package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	companies "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

// CompanyFinder resolves entity names for agent context assembly.
type CompanyFinder interface {
	FindByName(ctx context.Context, name string) (*companies.Company, error)
}

// AgentService exposes the analytics surface to external agent
// consumers: context bundling and dispatch-by-name analysis execution.
type AgentService struct {
	analytics *AnalyticsService
	finder    CompanyFinder
}

// NewAgentService creates a new agent service.
func NewAgentService(analytics *AnalyticsService, finder CompanyFinder) *AgentService {
	return &AgentService{analytics: analytics, finder: finder}
}

// GraphContext resolves the named entities concurrently and attaches an
// influence ranking so the consumer can weight them. Names that match
// nothing are silently omitted.
func (s *AgentService) GraphContext(ctx context.Context, query string, entityNames []string) (*domain.GraphContext, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query cannot be empty", domain.ErrInvalidArgument)
	}

	topN := agentContextCentralityN
	centralityFut, err := s.analytics.CriticalNodes(ctx, &topN)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		entities []companies.Company
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range entityNames {
		name := strings.TrimSpace(name)
		if name == "" {
			continue
		}
		g.Go(func() error {
			company, err := s.finder.FindByName(gctx, name)
			if err != nil {
				if IsNotFound(err) {
					return nil
				}
				return err
			}
			mu.Lock()
			entities = append(entities, *company)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	centrality, err := centralityFut.Wait(ctx)
	if err != nil {
		return nil, err
	}

	if entities == nil {
		entities = []companies.Company{}
	}
	return &domain.GraphContext{
		Query:             query,
		Entities:          entities,
		CentralityResults: centrality,
	}, nil
}

// ExecuteAnalysis runs the analysis selected by an already-decoded
// request. Parameter defaults follow the same rules as the direct
// endpoints.
func (s *AgentService) ExecuteAnalysis(ctx context.Context, req *domain.AnalysisRequest) (any, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: analysis request is required", domain.ErrInvalidArgument)
	}

	switch req.Type {
	case domain.AnalysisPathfinding:
		if req.Pathfinding == nil {
			return nil, fmt.Errorf("%w: pathfinding parameters are required", domain.ErrInvalidArgument)
		}
		return s.analytics.BackupSupplierRoutes(ctx, req.Pathfinding.Source, req.Pathfinding.Target)

	case domain.AnalysisCentrality:
		var topN *int
		if req.Centrality != nil {
			topN = req.Centrality.TopN
		}
		fut, err := s.analytics.CriticalNodes(ctx, topN)
		if err != nil {
			return nil, err
		}
		return fut.Wait(ctx)

	case domain.AnalysisCommunity:
		return s.analytics.DetectCommunities(ctx).Wait(ctx)

	case domain.AnalysisVulnerability:
		var minImpact *int
		if req.Vulnerability != nil {
			minImpact = req.Vulnerability.MinImpact
		}
		return s.analytics.Vulnerabilities(ctx, minImpact)
	}

	return nil, fmt.Errorf("%w: unknown analysis type %q", domain.ErrInvalidArgument, req.Type)
}
