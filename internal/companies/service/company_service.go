package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	FindByName(ctx context.Context, name string) (*domain.Company, error)
	FindByMinMatchScore(ctx context.Context, minScore float64) ([]domain.Company, error)
	FindByIndustrySector(ctx context.Context, sector string) ([]domain.Company, error)
	FindByCountry(ctx context.Context, country string) ([]domain.Company, error)
	BatchUpsert(ctx context.Context, companies []domain.Company) (int, error)
	UpsertWithSupplier(ctx context.Context, c domain.Company, supplierName string) (*domain.Company, error)
	CreateCompetition(ctx context.Context, req domain.CompetitionRequest) error
	ResetGraph(ctx context.Context) error
}

const defaultMinMatchScore = 0.8

// CompanyService handles entity management business logic.
type CompanyService struct {
	repo Repository
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo Repository) *CompanyService {
	return &CompanyService{repo: repo}
}

// FindByName looks up a company by exact name. A miss surfaces as
// ErrCompanyNotFound, never as a generic failure.
func (s *CompanyService) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name cannot be empty", domain.ErrInvalidArgument)
	}
	return s.repo.FindByName(ctx, name)
}

// HighConfidence returns companies whose match score meets the threshold,
// falling back to the documented default when the caller passes nil.
func (s *CompanyService) HighConfidence(ctx context.Context, minMatchScore *float64) ([]domain.Company, error) {
	threshold := defaultMinMatchScore
	if minMatchScore != nil {
		if *minMatchScore < 0 {
			return nil, fmt.Errorf("%w: minMatchScore must not be negative", domain.ErrInvalidArgument)
		}
		threshold = *minMatchScore
	}
	return s.repo.FindByMinMatchScore(ctx, threshold)
}

// BySector returns every company tagged with the industry sector.
func (s *CompanyService) BySector(ctx context.Context, sector string) ([]domain.Company, error) {
	sector = strings.TrimSpace(sector)
	if sector == "" {
		return nil, fmt.Errorf("%w: sector cannot be empty", domain.ErrInvalidArgument)
	}
	return s.repo.FindByIndustrySector(ctx, sector)
}

// ByCountry returns every company registered in the country.
func (s *CompanyService) ByCountry(ctx context.Context, country string) ([]domain.Company, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, fmt.Errorf("%w: country cannot be empty", domain.ErrInvalidArgument)
	}
	return s.repo.FindByCountry(ctx, country)
}

// BatchIngest validates every record before anything reaches the store:
// one invalid record rejects the whole batch.
func (s *CompanyService) BatchIngest(ctx context.Context, companies []domain.Company) (int, error) {
	if len(companies) == 0 {
		return 0, fmt.Errorf("%w: company list cannot be empty", domain.ErrInvalidArgument)
	}
	for i, c := range companies {
		if c.PermID == 0 {
			return 0, fmt.Errorf("%w: company at index %d is missing permid", domain.ErrInvalidArgument, i)
		}
		if strings.TrimSpace(c.Name) == "" {
			return 0, fmt.Errorf("%w: company at index %d is missing name", domain.ErrInvalidArgument, i)
		}
	}

	count, err := s.repo.BatchUpsert(ctx, companies)
	if err != nil {
		return 0, err
	}

	log.Info("batch ingest complete", "companies", count)
	return count, nil
}

// IngestWithSupplier merges a single company and links it to an existing
// supplier node when one matches the given name.
func (s *CompanyService) IngestWithSupplier(ctx context.Context, c domain.Company, supplierName string) (*domain.Company, error) {
	if c.PermID == 0 {
		return nil, fmt.Errorf("%w: permid is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%w: company name cannot be empty", domain.ErrInvalidArgument)
	}
	return s.repo.UpsertWithSupplier(ctx, c, strings.TrimSpace(supplierName))
}

// CreateCompetition records a mutual competition edge between two companies.
func (s *CompanyService) CreateCompetition(ctx context.Context, req domain.CompetitionRequest) error {
	req.Company1 = strings.TrimSpace(req.Company1)
	req.Company2 = strings.TrimSpace(req.Company2)
	if req.Company1 == "" {
		return fmt.Errorf("%w: company1 cannot be empty", domain.ErrInvalidArgument)
	}
	if req.Company2 == "" {
		return fmt.Errorf("%w: company2 cannot be empty", domain.ErrInvalidArgument)
	}
	if req.Company1 == req.Company2 {
		return fmt.Errorf("%w: company1 and company2 must be different", domain.ErrInvalidArgument)
	}
	if req.Strength < 0 || req.Strength > 1 {
		return fmt.Errorf("%w: strength must be within [0,1]", domain.ErrInvalidArgument)
	}
	return s.repo.CreateCompetition(ctx, req)
}

// ResetGraph wipes every node and edge. Demo environments only.
func (s *CompanyService) ResetGraph(ctx context.Context) error {
	log.Warn("resetting supply chain graph")
	return s.repo.ResetGraph(ctx)
}
