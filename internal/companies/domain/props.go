package domain

import "time"

// CompanyFromProps builds a Company from a node property map as returned
// by the driver. Missing properties become zero values; score annotations
// stay nil until an algorithm run has written them.
func CompanyFromProps(props map[string]any) *Company {
	c := &Company{
		PermID:           PropInt64(props, "permid"),
		Name:             PropString(props, "name"),
		IsFinalAssembler: PropBool(props, "is_final_assembler"),
		MatchScore:       PropFloat(props, "match_score"),
		IndustrySector:   PropString(props, "industry_sector"),
		Country:          PropString(props, "country"),
		MarketCap:        PropInt64(props, "market_cap"),
		Revenue:          PropInt64(props, "revenue"),
	}

	if t, ok := props["ingestion_date"].(time.Time); ok {
		c.IngestionDate = &t
	}
	if v, ok := props["pagerank_score"].(float64); ok {
		c.PagerankScore = &v
	}
	if v, ok := props["betweenness_centrality"].(float64); ok {
		c.BetweennessCentrality = &v
	}
	if v, ok := props["community_id"].(int64); ok {
		c.CommunityID = &v
	}

	return c
}

func PropString(props map[string]any, key string) string {
	v, _ := props[key].(string)
	return v
}

func PropBool(props map[string]any, key string) bool {
	v, _ := props[key].(bool)
	return v
}

// PropInt64 tolerates both integer and float encodings; plugin procedures
// occasionally return whole numbers as floats.
func PropInt64(props map[string]any, key string) int64 {
	switch v := props[key].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func PropFloat(props map[string]any, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}
