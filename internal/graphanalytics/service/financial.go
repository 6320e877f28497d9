package service

import (
	"context"
	"fmt"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

const (
	defaultFraudWindow    = "30d"
	defaultFraudRiskScore = 0.7
	fraudScanTopN         = 10

	defaultIntelSector = "Technology"
	defaultIntelDepth  = 3
)

// FraudPatterns flags companies whose influence score exceeds the risk
// threshold within the analysis window. The window is descriptive
// metadata; the scan itself runs over the current projection.
func (s *AnalyticsService) FraudPatterns(ctx context.Context, timeWindow string, minRiskScore *float64) (*domain.FraudReport, error) {
	if timeWindow == "" {
		timeWindow = defaultFraudWindow
	}
	risk := defaultFraudRiskScore
	if minRiskScore != nil {
		if *minRiskScore <= 0 {
			return nil, fmt.Errorf("%w: minRiskScore must be positive", domain.ErrInvalidArgument)
		}
		risk = *minRiskScore
	}

	topN := fraudScanTopN
	fut, err := s.CriticalNodes(ctx, &topN)
	if err != nil {
		return nil, err
	}
	nodes, err := fut.Wait(ctx)
	if err != nil {
		return nil, err
	}

	suspicious := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node.CentralityScore > risk {
			suspicious = append(suspicious, "Suspicious pattern detected for: "+node.CompanyName)
		}
	}

	return &domain.FraudReport{
		TimeWindow:         timeWindow,
		MinRiskScore:       risk,
		SuspiciousEntities: suspicious,
	}, nil
}

// TradingIntelligence joins the frenemy and acquisition analyses into a
// single market view with fixed guidance notes.
func (s *AnalyticsService) TradingIntelligence(ctx context.Context, sector string, analysisDepth *int) (*domain.TradingIntelligence, error) {
	if sector == "" {
		sector = defaultIntelSector
	}
	depth, err := positiveOrDefault("analysisDepth", analysisDepth, defaultIntelDepth)
	if err != nil {
		return nil, err
	}

	frenemies, err := s.FrenemyRelationships(ctx)
	if err != nil {
		return nil, err
	}

	var maxCap int64 = 100_000_000_000
	targets, err := s.AcquisitionTargets(ctx, nil, &maxCap)
	if err != nil {
		return nil, err
	}

	return &domain.TradingIntelligence{
		Sector:                   sector,
		AnalysisDepth:            depth,
		CompetitiveRelationships: frenemies,
		InvestmentOpportunities:  targets,
		Insights: []string{
			"Complex competitor relationships indicate market consolidation opportunities",
			"High centrality companies with low market cap present strategic investment potential",
			"Supply chain vulnerabilities create both risks and opportunities",
		},
	}, nil
}
