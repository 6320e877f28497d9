package domain

// FraudReport flags high-influence entities above a risk threshold.
// The underlying signal is rank centrality; the report is a financial
// framing of it.
type FraudReport struct {
	TimeWindow         string   `json:"time_window"`
	MinRiskScore       float64  `json:"min_risk_score"`
	SuspiciousEntities []string `json:"suspicious_entities"`
}

// TradingIntelligence combines competitive-relationship and valuation
// analyses into one market view.
type TradingIntelligence struct {
	Sector                   string              `json:"sector"`
	AnalysisDepth            int                 `json:"analysis_depth"`
	CompetitiveRelationships []FrenemyPair       `json:"competitive_relationships"`
	InvestmentOpportunities  []AcquisitionTarget `json:"investment_opportunities"`
	Insights                 []string            `json:"insights"`
}
