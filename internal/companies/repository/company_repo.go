package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
	storage "github.com/supplygraph-labs/graph-analytics-backend/internal/storage/neo4j"
)

// CompanyRepository provides persistence operations for Company nodes.
type CompanyRepository struct {
	db storage.Runner
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db storage.Runner) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindByName returns the company with the exact name, or ErrCompanyNotFound.
func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	const q = `
MATCH (c:Company {name: $name})
RETURN c
LIMIT 1`

	result, err := r.db.Run(ctx, q, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, domain.ErrCompanyNotFound
	}

	c, err := companyFromRecord(result.Records[0], "c")
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByMinMatchScore returns companies whose entity-resolution confidence
// meets the threshold, best matches first.
func (r *CompanyRepository) FindByMinMatchScore(ctx context.Context, minScore float64) ([]domain.Company, error) {
	const q = `
MATCH (c:Company)
WHERE c.match_score >= $minScore
RETURN c
ORDER BY c.match_score DESC`

	return r.findAll(ctx, q, map[string]any{"minScore": minScore})
}

// FindByIndustrySector returns every company tagged with the sector.
func (r *CompanyRepository) FindByIndustrySector(ctx context.Context, sector string) ([]domain.Company, error) {
	const q = `
MATCH (c:Company {industry_sector: $sector})
RETURN c
ORDER BY c.name`

	return r.findAll(ctx, q, map[string]any{"sector": sector})
}

// FindByCountry returns every company registered in the country.
func (r *CompanyRepository) FindByCountry(ctx context.Context, country string) ([]domain.Company, error) {
	const q = `
MATCH (c:Company {country: $country})
RETURN c
ORDER BY c.name`

	return r.findAll(ctx, q, map[string]any{"country": country})
}

func (r *CompanyRepository) findAll(ctx context.Context, q string, params map[string]any) ([]domain.Company, error) {
	result, err := r.db.Run(ctx, q, params)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Company, 0, len(result.Records))
	for _, rec := range result.Records {
		c, err := companyFromRecord(rec, "c")
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// BatchUpsert merges companies by permid. An existing node keeps the higher
// of the stored and incoming match scores. Returns the number of rows
// processed. Each individual merge is atomic; the batch as a whole is not.
func (r *CompanyRepository) BatchUpsert(ctx context.Context, companies []domain.Company) (int, error) {
	const q = `
UNWIND $entities AS entity
MERGE (c:Company {permid: entity.permid})
ON CREATE SET c.name = entity.name,
              c.is_final_assembler = entity.isFinalAssembler,
              c.match_score = entity.matchScore,
              c.industry_sector = entity.industrySector,
              c.country = entity.country,
              c.market_cap = entity.marketCap,
              c.revenue = entity.revenue,
              c.ingestion_date = datetime()
ON MATCH SET c.match_score = CASE WHEN entity.matchScore > c.match_score
                                  THEN entity.matchScore
                                  ELSE c.match_score END
RETURN count(c) AS ingestedCount`

	entities := make([]map[string]any, 0, len(companies))
	for _, c := range companies {
		entities = append(entities, map[string]any{
			"permid":           c.PermID,
			"name":             c.Name,
			"isFinalAssembler": c.IsFinalAssembler,
			"matchScore":       c.MatchScore,
			"industrySector":   c.IndustrySector,
			"country":          c.Country,
			"marketCap":        c.MarketCap,
			"revenue":          c.Revenue,
		})
	}

	result, err := r.db.Run(ctx, q, map[string]any{"entities": entities})
	if err != nil {
		return 0, err
	}
	if len(result.Records) == 0 {
		return 0, nil
	}

	count, _ := result.Records[0].Get("ingestedCount")
	n, ok := count.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected ingestedCount type %T", count)
	}
	return int(n), nil
}

// UpsertWithSupplier merges a single company and, when the named supplier
// already exists, creates the supply edge from it. Used by the ETL path.
func (r *CompanyRepository) UpsertWithSupplier(ctx context.Context, c domain.Company, supplierName string) (*domain.Company, error) {
	const q = `
MERGE (c:Company {permid: $permid})
ON CREATE SET c.name = $name,
              c.is_final_assembler = $isFinalAssembler,
              c.match_score = $matchScore,
              c.ingestion_date = datetime()
ON MATCH SET c.match_score = CASE WHEN $matchScore > c.match_score
                                  THEN $matchScore
                                  ELSE c.match_score END
WITH c
OPTIONAL MATCH (supplier:Company {name: $supplierName})
FOREACH (_ IN CASE WHEN supplier IS NOT NULL THEN [1] ELSE [] END |
    MERGE (supplier)-[:SUPPLY_COMPONENTS {
        created_date: datetime(),
        confidence: $matchScore
    }]->(c)
)
RETURN c`

	result, err := r.db.Run(ctx, q, map[string]any{
		"permid":           c.PermID,
		"name":             c.Name,
		"isFinalAssembler": c.IsFinalAssembler,
		"matchScore":       c.MatchScore,
		"supplierName":     supplierName,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("merge returned no rows for permid %d", c.PermID)
	}

	return companyFromRecord(result.Records[0], "c")
}

// CreateCompetition creates a competition edge in both directions so the
// pair is reachable regardless of traversal orientation.
func (r *CompanyRepository) CreateCompetition(ctx context.Context, req domain.CompetitionRequest) error {
	const q = `
MATCH (c1:Company {name: $company1Name}), (c2:Company {name: $company2Name})
MERGE (c1)-[:COMPETES_WITH {
    relationship_type: $relationshipType,
    strength: $strength,
    created_date: datetime()
}]->(c2)
MERGE (c2)-[:COMPETES_WITH {
    relationship_type: $relationshipType,
    strength: $strength,
    created_date: datetime()
}]->(c1)`

	_, err := r.db.Run(ctx, q, map[string]any{
		"company1Name":     req.Company1,
		"company2Name":     req.Company2,
		"relationshipType": req.RelationshipType,
		"strength":         req.Strength,
	})
	return err
}

// ResetGraph deletes every company node and relationship. Demo use only.
func (r *CompanyRepository) ResetGraph(ctx context.Context) error {
	const q = `
MATCH (c:Company)
DETACH DELETE c`

	_, err := r.db.Run(ctx, q, nil)
	return err
}

// companyFromRecord maps the node bound to the given key onto a Company.
func companyFromRecord(rec *neo4j.Record, key string) (*domain.Company, error) {
	val, ok := rec.Get(key)
	if !ok {
		return nil, fmt.Errorf("record has no %q column", key)
	}
	node, ok := val.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("column %q is %T, want node", key, val)
	}
	return domain.CompanyFromProps(node.Props), nil
}
