package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apihttp "github.com/supplygraph-labs/graph-analytics-backend/internal/api/http"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/companies/domain"
)

func (h *Handler) getByName(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))

	company, err := h.svc.FindByName(c.Request.Context(), name)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

// list serves the company collection. Sector and country act as exact
// filters; without either the listing falls back to the high-confidence
// view thresholded by minMatchScore.
func (h *Handler) list(c *gin.Context) {
	var (
		items []domain.Company
		err   error
	)

	switch {
	case strings.TrimSpace(c.Query("sector")) != "":
		items, err = h.svc.BySector(c.Request.Context(), c.Query("sector"))

	case strings.TrimSpace(c.Query("country")) != "":
		items, err = h.svc.ByCountry(c.Request.Context(), c.Query("country"))

	default:
		var minScore *float64
		if raw := strings.TrimSpace(c.Query("minMatchScore")); raw != "" {
			v, perr := strconv.ParseFloat(raw, 64)
			if perr != nil {
				apihttp.RespondError(c, fmt.Errorf("%w: minMatchScore must be a number", domain.ErrInvalidArgument))
				return
			}
			minScore = &v
		}
		items, err = h.svc.HighConfidence(c.Request.Context(), minScore)
	}

	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	if items == nil {
		items = []domain.Company{}
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) batchIngest(c *gin.Context) {
	var companies []domain.Company
	if err := c.ShouldBindJSON(&companies); err != nil {
		apihttp.RespondError(c, fmt.Errorf("%w: invalid body", domain.ErrInvalidArgument))
		return
	}

	count, err := h.svc.BatchIngest(c.Request.Context(), companies)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, batchIngestResponse{
		IngestedCount: count,
		Message:       fmt.Sprintf("ingested %d companies", count),
	})
}

func (h *Handler) ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.RespondError(c, fmt.Errorf("%w: invalid body", domain.ErrInvalidArgument))
		return
	}

	company, err := h.svc.IngestWithSupplier(c.Request.Context(), req.Company, req.SupplierName)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *Handler) createCompetition(c *gin.Context) {
	var req competitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.RespondError(c, fmt.Errorf("%w: invalid body", domain.ErrInvalidArgument))
		return
	}

	err := h.svc.CreateCompetition(c.Request.Context(), domain.CompetitionRequest{
		Company1:         req.Company1,
		Company2:         req.Company2,
		RelationshipType: domain.RelCompetesWith,
		Strength:         req.Strength,
	})
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "competition relationship created"})
}

func (h *Handler) resetGraph(c *gin.Context) {
	if err := h.svc.ResetGraph(c.Request.Context()); err != nil {
		apihttp.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "graph reset"})
}
