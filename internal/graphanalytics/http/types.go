package http

import (
	"encoding/json"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/service"
)

// Handler exposes the graph analytics endpoints.
type Handler struct {
	analytics *service.AnalyticsService
	agent     *service.AgentService
}

func NewHandler(analytics *service.AnalyticsService, agent *service.AgentService) *Handler {
	return &Handler{analytics: analytics, agent: agent}
}

type graphContextRequest struct {
	Query       string   `json:"query"`
	EntityNames []string `json:"entityNames"`
}

type executeAnalysisRequest struct {
	AnalysisType string          `json:"analysisType"`
	Parameters   json.RawMessage `json:"parameters"`
}
