package domain

import "time"

// Company is a node in the supply chain graph, keyed by its PermID.
// Score annotations (pagerank, betweenness, community) are written by
// batch algorithm runs and are only meaningful after a projection refresh.
type Company struct {
	PermID           int64      `json:"permid"`
	Name             string     `json:"name"`
	IsFinalAssembler bool       `json:"is_final_assembler"`
	MatchScore       float64    `json:"match_score"`
	IndustrySector   string     `json:"industry_sector,omitempty"`
	Country          string     `json:"country,omitempty"`
	MarketCap        int64      `json:"market_cap,omitempty"`
	Revenue          int64      `json:"revenue,omitempty"`
	IngestionDate    *time.Time `json:"ingestion_date,omitempty"`

	PagerankScore         *float64 `json:"pagerank_score,omitempty"`
	BetweennessCentrality *float64 `json:"betweenness_centrality,omitempty"`
	CommunityID           *int64   `json:"community_id,omitempty"`
}

// Relationship type names as stored in the graph.
const (
	RelSupplyComponents = "SUPPLY_COMPONENTS"
	RelManufacturesFor  = "MANUFACTURES_FOR"
	RelDesignChipsFor   = "DESIGN_CHIPS_FOR"
	RelCompetesWith     = "COMPETES_WITH"
	RelPartnerWith      = "PARTNER_WITH"
)

// IsCriticalNode reports whether the company sits at a critical position
// according to its cached centrality annotations.
func (c *Company) IsCriticalNode() bool {
	if c.PagerankScore != nil && *c.PagerankScore > 0.1 {
		return true
	}
	if c.BetweennessCentrality != nil && *c.BetweennessCentrality > 0.05 {
		return true
	}
	return false
}

// CompetitionRequest describes a bidirectional competition edge between
// two companies.
type CompetitionRequest struct {
	Company1         string  `json:"company1"`
	Company2         string  `json:"company2"`
	RelationshipType string  `json:"relationship_type"`
	Strength         float64 `json:"strength"`
}
