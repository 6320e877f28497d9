package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	companies "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
	storage "github.com/supplygraph-labs/graph-analytics-backend/internal/storage/neo4j"
)

// AnalyticsRepository translates analytics calls into Cypher against the
// store and its algorithm plugin. Heavy algorithms run server-side
// against the projection resolved through the manager; this layer only
// shapes parameters and maps rows.
type AnalyticsRepository struct {
	db         storage.Runner
	projection *ProjectionManager
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(db storage.Runner, projection *ProjectionManager) *AnalyticsRepository {
	return &AnalyticsRepository{db: db, projection: projection}
}

// RefreshProjection rebuilds the algorithm projection and the persisted
// score annotations.
func (r *AnalyticsRepository) RefreshProjection(ctx context.Context) (*domain.RefreshResult, error) {
	return r.projection.Refresh(ctx)
}

// ProjectionName returns the active projection name, used by callers to
// version cache entries.
func (r *AnalyticsRepository) ProjectionName() string {
	return r.projection.Current()
}

// ShortestWeightedPath streams up to ten least-cost routes between the
// two companies using weighted shortest-path search. A missing route
// yields an empty slice, not an error.
func (r *AnalyticsRepository) ShortestWeightedPath(ctx context.Context, startName, endName string) ([]domain.PathResult, error) {
	const q = `
MATCH (start:Company {name: $startName}), (end:Company {name: $endName})
CALL gds.shortestPath.dijkstra.stream($graphName, {
    sourceNode: id(start),
    targetNode: id(end),
    relationshipWeightProperty: 'reliability_score'
})
YIELD index, sourceNode, targetNode, totalCost, nodeIds, costs
RETURN gds.util.asNode(sourceNode).name AS source,
       gds.util.asNode(targetNode).name AS target,
       totalCost,
       size(nodeIds) - 1 AS pathLength,
       [nodeId IN nodeIds | gds.util.asNode(nodeId).name] AS pathNames
ORDER BY totalCost ASC
LIMIT 10`

	result, err := r.db.Run(ctx, q, map[string]any{
		"startName": startName,
		"endName":   endName,
		"graphName": r.projection.Current(),
	})
	if err != nil {
		return nil, err
	}

	return pathsFromRecords(result.Records)
}

// AllPathsWithinHops enumerates every route between the two companies up
// to maxHops relationships, cheapest and shortest first, truncated to
// maxResults. The hop bound cannot be a query parameter in a
// variable-length pattern, so it is formatted into the statement after
// validation upstream.
func (r *AnalyticsRepository) AllPathsWithinHops(ctx context.Context, startName, endName string, maxHops, maxResults int) ([]domain.PathResult, error) {
	q := fmt.Sprintf(`
MATCH path = (start:Company {name: $startName})-[*1..%d]-(end:Company {name: $endName})
WHERE start <> end
WITH path, length(path) AS pathLength,
     [node IN nodes(path) | node.name] AS pathNames,
     reduce(cost = 0.0, rel IN relationships(path) |
        cost + coalesce(rel.reliability_score, 1.0)) AS totalCost
RETURN $startName AS source,
       $endName AS target,
       pathNames, pathLength, totalCost
ORDER BY pathLength ASC, totalCost ASC
LIMIT $maxResults`, maxHops)

	result, err := r.db.Run(ctx, q, map[string]any{
		"startName":  startName,
		"endName":    endName,
		"maxResults": maxResults,
	})
	if err != nil {
		return nil, err
	}

	return pathsFromRecords(result.Records)
}

// RankCentrality runs the influence-ranking algorithm over the whole
// projection and returns the topN companies, highest score first.
func (r *AnalyticsRepository) RankCentrality(ctx context.Context, topN int) ([]domain.CentralityResult, error) {
	const q = `
CALL gds.pageRank.stream($graphName, {
    maxIterations: 20,
    dampingFactor: 0.85,
    tolerance: 0.0000001
})
YIELD nodeId, score
WITH gds.util.asNode(nodeId) AS company, score
RETURN company.name AS companyName,
       company.permid AS permid,
       score AS centralityScore
ORDER BY score DESC
LIMIT $topN`

	result, err := r.db.Run(ctx, q, map[string]any{
		"graphName": r.projection.Current(),
		"topN":      topN,
	})
	if err != nil {
		return nil, err
	}

	return centralityFromRecords(result.Records, domain.CentralityPageRank), nil
}

// BridgeCentrality runs the betweenness algorithm; companies with a zero
// score are filtered out server-side.
func (r *AnalyticsRepository) BridgeCentrality(ctx context.Context, topN int) ([]domain.CentralityResult, error) {
	const q = `
CALL gds.betweenness.stream($graphName)
YIELD nodeId, score
WITH gds.util.asNode(nodeId) AS company, score
WHERE score > 0
RETURN company.name AS companyName,
       company.permid AS permid,
       score AS centralityScore
ORDER BY score DESC
LIMIT $topN`

	result, err := r.db.Run(ctx, q, map[string]any{
		"graphName": r.projection.Current(),
		"topN":      topN,
	})
	if err != nil {
		return nil, err
	}

	return centralityFromRecords(result.Records, domain.CentralityBetweenness), nil
}

// DetectCommunities partitions the projection into disjoint groups and
// returns them largest first, with member rosters.
func (r *AnalyticsRepository) DetectCommunities(ctx context.Context) ([]domain.CommunityGroup, error) {
	const q = `
CALL gds.louvain.stream($graphName, {
    maxIterations: 10,
    tolerance: 0.0001
})
YIELD nodeId, communityId
WITH gds.util.asNode(nodeId) AS company, communityId
RETURN communityId,
       collect({
           name: company.name,
           permid: company.permid,
           is_final_assembler: company.is_final_assembler
       }) AS members,
       count(company) AS communitySize
ORDER BY communitySize DESC`

	result, err := r.db.Run(ctx, q, map[string]any{"graphName": r.projection.Current()})
	if err != nil {
		return nil, err
	}

	groups := make([]domain.CommunityGroup, 0, len(result.Records))
	for _, rec := range result.Records {
		idVal, _ := rec.Get("communityId")
		sizeVal, _ := rec.Get("communitySize")
		membersVal, _ := rec.Get("members")

		group := domain.CommunityGroup{
			CommunityID: asInt64(idVal),
			Size:        int(asInt64(sizeVal)),
		}

		rawMembers, _ := membersVal.([]any)
		group.Members = make([]domain.CommunityMember, 0, len(rawMembers))
		for _, rm := range rawMembers {
			props, ok := rm.(map[string]any)
			if !ok {
				continue
			}
			group.Members = append(group.Members, domain.CommunityMember{
				Name:             companies.PropString(props, "name"),
				PermID:           companies.PropInt64(props, "permid"),
				IsFinalAssembler: companies.PropBool(props, "is_final_assembler"),
			})
		}

		groups = append(groups, group)
	}
	return groups, nil
}

// MembersOfSameCommunity returns the companies sharing the target's
// previously-computed community id, most influential first. A target
// without an assignment yields an empty slice.
func (r *AnalyticsRepository) MembersOfSameCommunity(ctx context.Context, targetName string) ([]companies.Company, error) {
	const q = `
MATCH (target:Company {name: $targetCompany})
WHERE target.community_id IS NOT NULL
MATCH (related:Company)
WHERE related.community_id = target.community_id AND related <> target
RETURN related
ORDER BY related.pagerank_score DESC`

	result, err := r.db.Run(ctx, q, map[string]any{"targetCompany": targetName})
	if err != nil {
		return nil, err
	}

	out := make([]companies.Company, 0, len(result.Records))
	for _, rec := range result.Records {
		val, _ := rec.Get("related")
		node, ok := val.(neo4j.Node)
		if !ok {
			return nil, fmt.Errorf("related column is %T, want node", val)
		}
		out = append(out, *companies.CompanyFromProps(node.Props))
	}
	return out, nil
}

// FrenemyPairs finds company pairs connected by both a competition edge
// and a cooperative (supply or partner) edge in either direction.
func (r *AnalyticsRepository) FrenemyPairs(ctx context.Context) ([]domain.FrenemyPair, error) {
	const q = `
MATCH (c1:Company)-[:COMPETES_WITH]->(c2:Company)
MATCH (c1)-[:SUPPLY_COMPONENTS|PARTNER_WITH]->(c2)
RETURN c1.name AS company1,
       c2.name AS company2,
       'FRENEMY' AS relationshipType,
       coalesce(c1.pagerank_score, 0.0) + coalesce(c2.pagerank_score, 0.0) AS combinedInfluence
ORDER BY combinedInfluence DESC`

	result, err := r.db.Run(ctx, q, nil)
	if err != nil {
		return nil, err
	}

	pairs := make([]domain.FrenemyPair, 0, len(result.Records))
	for _, rec := range result.Records {
		c1, _ := rec.Get("company1")
		c2, _ := rec.Get("company2")
		rt, _ := rec.Get("relationshipType")
		inf, _ := rec.Get("combinedInfluence")
		pairs = append(pairs, domain.FrenemyPair{
			Company1:          asString(c1),
			Company2:          asString(c2),
			RelationshipType:  asString(rt),
			CombinedInfluence: asFloat(inf),
		})
	}
	return pairs, nil
}

// Vulnerabilities finds companies with exactly one supplier whose loss
// would cascade to at least minDownstream dependents.
func (r *AnalyticsRepository) Vulnerabilities(ctx context.Context, minDownstream int) ([]domain.Vulnerability, error) {
	const q = `
MATCH (supplier:Company)-[:SUPPLY_COMPONENTS]->(customer:Company)
WITH customer, collect(supplier) AS suppliers, count(supplier) AS supplierCount
WHERE supplierCount = 1
MATCH (customer)-[:SUPPLY_COMPONENTS]->(downstream:Company)
WITH customer, suppliers[0] AS singleSupplier, count(downstream) AS downstreamCount
WHERE downstreamCount >= $minDownstream
RETURN customer.name AS vulnerableCustomer,
       singleSupplier.name AS criticalSupplier,
       downstreamCount AS impactSize,
       coalesce(customer.pagerank_score, 0.0) AS customerImportance
ORDER BY downstreamCount DESC, customerImportance DESC`

	result, err := r.db.Run(ctx, q, map[string]any{"minDownstream": minDownstream})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Vulnerability, 0, len(result.Records))
	for _, rec := range result.Records {
		customer, _ := rec.Get("vulnerableCustomer")
		supplier, _ := rec.Get("criticalSupplier")
		impact, _ := rec.Get("impactSize")
		importance, _ := rec.Get("customerImportance")
		out = append(out, domain.Vulnerability{
			VulnerableCustomer: asString(customer),
			CriticalSupplier:   asString(supplier),
			ImpactSize:         int(asInt64(impact)),
			CustomerImportance: asFloat(importance),
		})
	}
	return out, nil
}

// AcquisitionTargets finds companies whose cached influence score is
// disproportionate to their market valuation.
func (r *AnalyticsRepository) AcquisitionTargets(ctx context.Context, minCentrality float64, maxMarketCap int64, maxResults int) ([]domain.AcquisitionTarget, error) {
	const q = `
MATCH (c:Company)
WHERE c.pagerank_score IS NOT NULL
  AND c.market_cap IS NOT NULL
  AND c.pagerank_score > $minCentrality
  AND c.market_cap < $maxMarketCap
OPTIONAL MATCH (c)-[r:SUPPLY_COMPONENTS|COMPETES_WITH|PARTNER_WITH]-()
WITH c, count(r) AS relationshipCount
RETURN c.name AS companyName,
       c.permid AS permid,
       c.pagerank_score AS networkImportance,
       c.market_cap AS marketCap,
       relationshipCount AS networkSize,
       c.pagerank_score / (c.market_cap / 1000000.0) AS valueEfficiency
ORDER BY valueEfficiency DESC
LIMIT $maxResults`

	result, err := r.db.Run(ctx, q, map[string]any{
		"minCentrality": minCentrality,
		"maxMarketCap":  maxMarketCap,
		"maxResults":    maxResults,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.AcquisitionTarget, 0, len(result.Records))
	for _, rec := range result.Records {
		name, _ := rec.Get("companyName")
		permid, _ := rec.Get("permid")
		importance, _ := rec.Get("networkImportance")
		marketCap, _ := rec.Get("marketCap")
		size, _ := rec.Get("networkSize")
		efficiency, _ := rec.Get("valueEfficiency")
		out = append(out, domain.AcquisitionTarget{
			CompanyName:       asString(name),
			PermID:            asInt64(permid),
			NetworkImportance: asFloat(importance),
			MarketCap:         asInt64(marketCap),
			NetworkSize:       int(asInt64(size)),
			ValueEfficiency:   asFloat(efficiency),
		})
	}
	return out, nil
}

func pathsFromRecords(records []*neo4j.Record) ([]domain.PathResult, error) {
	paths := make([]domain.PathResult, 0, len(records))
	for _, rec := range records {
		source, _ := rec.Get("source")
		target, _ := rec.Get("target")
		cost, _ := rec.Get("totalCost")
		length, _ := rec.Get("pathLength")
		names, _ := rec.Get("pathNames")

		rawNames, _ := names.([]any)
		pathNames := make([]string, 0, len(rawNames))
		for _, n := range rawNames {
			pathNames = append(pathNames, asString(n))
		}

		paths = append(paths, domain.PathResult{
			Source:     asString(source),
			Target:     asString(target),
			TotalCost:  asFloat(cost),
			PathNames:  pathNames,
			PathLength: int(asInt64(length)),
		})
	}
	return paths, nil
}

// centralityFromRecords assigns dense rank positions and criticality
// tiers to rows already sorted by score descending.
func centralityFromRecords(records []*neo4j.Record, centralityType string) []domain.CentralityResult {
	out := make([]domain.CentralityResult, 0, len(records))
	for i, rec := range records {
		name, _ := rec.Get("companyName")
		permid, _ := rec.Get("permid")
		score, _ := rec.Get("centralityScore")

		s := asFloat(score)
		out = append(out, domain.CentralityResult{
			CompanyName:     asString(name),
			PermID:          asInt64(permid),
			CentralityScore: s,
			CentralityType:  centralityType,
			Rank:            i + 1,
			Criticality:     domain.CriticalityTier(s),
		})
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
