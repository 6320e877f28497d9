package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apihttp "github.com/supplygraph-labs/graph-analytics-backend/internal/api/http"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/domain"
)

func (h *Handler) refreshGraph(c *gin.Context) {
	result, err := h.analytics.RefreshProjection(c.Request.Context())
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) backupSupplierRoutes(c *gin.Context) {
	paths, err := h.analytics.BackupSupplierRoutes(c.Request.Context(),
		c.Query("startCompany"), c.Query("endCompany"))
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(paths))
}

func (h *Handler) constrainedPaths(c *gin.Context) {
	maxHops, err := queryInt(c, "maxHops")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	maxResults, err := queryInt(c, "maxResults")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	paths, err := h.analytics.ConstrainedPaths(c.Request.Context(),
		c.Query("startCompany"), c.Query("endCompany"), maxHops, maxResults)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(paths))
}

func (h *Handler) criticalNodes(c *gin.Context) {
	topN, err := queryInt(c, "topN")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	future, err := h.analytics.CriticalNodes(c.Request.Context(), topN)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	results, err := future.Wait(c.Request.Context())
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(results))
}

func (h *Handler) bridgeNodes(c *gin.Context) {
	topN, err := queryInt(c, "topN")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	future, err := h.analytics.BridgeNodes(c.Request.Context(), topN)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	results, err := future.Wait(c.Request.Context())
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(results))
}

func (h *Handler) comprehensiveCentrality(c *gin.Context) {
	report, err := h.analytics.ComprehensiveCentrality(c.Request.Context()).Wait(c.Request.Context())
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) detectCommunities(c *gin.Context) {
	groups, err := h.analytics.DetectCommunities(c.Request.Context()).Wait(c.Request.Context())
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(groups))
}

func (h *Handler) relatedCompanies(c *gin.Context) {
	target := strings.TrimSpace(c.Param("targetCompany"))

	members, err := h.analytics.RelatedCompanies(c.Request.Context(), target)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(members))
}

func (h *Handler) frenemyRelationships(c *gin.Context) {
	pairs, err := h.analytics.FrenemyRelationships(c.Request.Context())
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(pairs))
}

func (h *Handler) vulnerabilities(c *gin.Context) {
	minImpact, err := queryInt(c, "minDownstreamImpact")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	items, err := h.analytics.Vulnerabilities(c.Request.Context(), minImpact)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *Handler) acquisitionTargets(c *gin.Context) {
	minCentrality, err := queryFloat(c, "minCentrality")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	maxMarketCap, err := queryInt64(c, "maxMarketCap")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	targets, err := h.analytics.AcquisitionTargets(c.Request.Context(), minCentrality, maxMarketCap)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(targets))
}

func (h *Handler) fraudPatterns(c *gin.Context) {
	minRiskScore, err := queryFloat(c, "minRiskScore")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	report, err := h.analytics.FraudPatterns(c.Request.Context(), c.Query("timeWindow"), minRiskScore)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) tradingIntelligence(c *gin.Context) {
	depth, err := queryInt(c, "analysisDepth")
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	report, err := h.analytics.TradingIntelligence(c.Request.Context(), c.Query("sector"), depth)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) graphContext(c *gin.Context) {
	var req graphContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.RespondError(c, fmt.Errorf("%w: invalid body", domain.ErrInvalidArgument))
		return
	}

	gc, err := h.agent.GraphContext(c.Request.Context(), req.Query, req.EntityNames)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gc)
}

func (h *Handler) executeAnalysis(c *gin.Context) {
	var req executeAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.RespondError(c, fmt.Errorf("%w: invalid body", domain.ErrInvalidArgument))
		return
	}

	parsed, err := domain.ParseAnalysisRequest(req.AnalysisType, req.Parameters)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}

	result, err := h.agent.ExecuteAnalysis(c.Request.Context(), parsed)
	if err != nil {
		apihttp.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysisType": req.AnalysisType, "result": result})
}

// queryInt reads an optional integer query parameter. A missing or blank
// value yields nil so the service applies its default.
func queryInt(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidArgument, name)
	}
	return &v, nil
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidArgument, name)
	}
	return &v, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidArgument, name)
	}
	return &v, nil
}

// nonNil keeps empty result sets rendering as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
