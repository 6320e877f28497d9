package http

import "github.com/gin-gonic/gin"

// Register attaches the analytics routes to the given router group.
// The refresh route sits behind the supplied auth middleware, and
// rateLimited throttles the algorithm-backed read endpoints.
func (h *Handler) Register(rg *gin.RouterGroup, authed, rateLimited gin.HandlerFunc) {
	rg.POST("/graph/refresh", authed, h.refreshGraph)

	algo := rg.Group("", rateLimited)
	algo.GET("/pathfinding/backup-supplier", h.backupSupplierRoutes)
	algo.GET("/pathfinding/constrained", h.constrainedPaths)
	algo.GET("/centrality/critical-nodes", h.criticalNodes)
	algo.GET("/centrality/bridge-nodes", h.bridgeNodes)
	algo.GET("/centrality/comprehensive", h.comprehensiveCentrality)
	algo.GET("/communities/detect", h.detectCommunities)

	rg.GET("/communities/related/:targetCompany", h.relatedCompanies)
	rg.GET("/analytics/frenemy-relationships", h.frenemyRelationships)
	rg.GET("/analytics/vulnerabilities", h.vulnerabilities)
	rg.GET("/analytics/acquisition-targets", h.acquisitionTargets)
	rg.GET("/financial/fraud-patterns", h.fraudPatterns)
	rg.GET("/financial/trading-intelligence", h.tradingIntelligence)

	rg.POST("/mcp/graph-context", h.graphContext)
	rg.POST("/mcp/execute-analysis", h.executeAnalysis)
}
