package http

import (
	"github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/companies/service"
)

// Handler exposes company management endpoints.
type Handler struct {
	svc *service.CompanyService
}

func NewHandler(svc *service.CompanyService) *Handler {
	return &Handler{svc: svc}
}

type batchIngestResponse struct {
	IngestedCount int    `json:"ingestedCount"`
	Message       string `json:"message"`
}

type ingestRequest struct {
	Company      domain.Company `json:"company"`
	SupplierName string         `json:"supplierName,omitempty"`
}

type competitionRequest struct {
	Company1 string  `json:"company1"`
	Company2 string  `json:"company2"`
	Strength float64 `json:"strength"`
}
