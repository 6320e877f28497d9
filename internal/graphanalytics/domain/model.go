package domain

import (
	"time"

	companies "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
)

// Centrality algorithm identifiers attached to each result row.
const (
	CentralityPageRank    = "PAGERANK"
	CentralityBetweenness = "BETWEENNESS"
)

// Criticality tiers derived from centrality score thresholds.
const (
	TierCritical = "CRITICAL"
	TierHigh     = "HIGH"
	TierMedium   = "MEDIUM"
	TierLow      = "LOW"
)

// PathResult is one route between two companies, produced per query and
// never persisted.
type PathResult struct {
	Source           string   `json:"source"`
	Target           string   `json:"target"`
	TotalCost        float64  `json:"total_cost"`
	PathNames        []string `json:"path_names"`
	PathLength       int      `json:"path_length"`
	ReliabilityScore float64  `json:"reliability_score,omitempty"`
}

// CentralityResult is a single company's score under one algorithm.
type CentralityResult struct {
	CompanyName     string  `json:"company_name"`
	PermID          int64   `json:"permid"`
	CentralityScore float64 `json:"centrality_score"`
	CentralityType  string  `json:"centrality_type"`
	Rank            int     `json:"rank"`
	Criticality     string  `json:"criticality"`
}

// CriticalityTier buckets a centrality score into a coarse tier.
func CriticalityTier(score float64) string {
	switch {
	case score > 0.1:
		return TierCritical
	case score > 0.05:
		return TierHigh
	case score > 0.01:
		return TierMedium
	default:
		return TierLow
	}
}

// CommunityMember is one company inside a detected community.
type CommunityMember struct {
	Name             string `json:"name"`
	PermID           int64  `json:"permid"`
	IsFinalAssembler bool   `json:"is_final_assembler"`
}

// CommunityGroup is a disjoint cluster produced by community detection.
type CommunityGroup struct {
	CommunityID int64             `json:"community_id"`
	Members     []CommunityMember `json:"members"`
	Size        int               `json:"size"`
}

// FrenemyPair is two companies linked by both a competitive and a
// cooperative edge.
type FrenemyPair struct {
	Company1          string  `json:"company1"`
	Company2          string  `json:"company2"`
	RelationshipType  string  `json:"relationship_type"`
	CombinedInfluence float64 `json:"combined_influence"`
}

// Vulnerability marks a company whose only supplier feeds a wide
// downstream fan-out.
type Vulnerability struct {
	VulnerableCustomer string  `json:"vulnerable_customer"`
	CriticalSupplier   string  `json:"critical_supplier"`
	ImpactSize         int     `json:"impact_size"`
	CustomerImportance float64 `json:"customer_importance"`
}

// AcquisitionTarget is a company whose network position outweighs its
// market valuation.
type AcquisitionTarget struct {
	CompanyName       string  `json:"company_name"`
	PermID            int64   `json:"permid"`
	NetworkImportance float64 `json:"network_importance"`
	MarketCap         int64   `json:"market_cap"`
	NetworkSize       int     `json:"network_size"`
	ValueEfficiency   float64 `json:"value_efficiency"`
}

// CentralityReport joins the two centrality analyses with static guidance
// notes.
type CentralityReport struct {
	ReportID           string             `json:"report_id"`
	PageRankResults    []CentralityResult `json:"pagerank_results"`
	BetweennessResults []CentralityResult `json:"betweenness_results"`
	CombinedInsights   []string           `json:"combined_insights"`
}

// RefreshResult describes one projection rebuild.
type RefreshResult struct {
	RefreshID         string    `json:"refresh_id"`
	GraphName         string    `json:"graph_name"`
	NodeCount         int64     `json:"node_count"`
	RelationshipCount int64     `json:"relationship_count"`
	CompletedAt       time.Time `json:"completed_at"`
}

// GraphContext bundles entities and influence scores for an external
// agent consumer.
type GraphContext struct {
	Query             string              `json:"query"`
	Entities          []companies.Company `json:"entities"`
	CentralityResults []CentralityResult  `json:"centrality_results"`
}
