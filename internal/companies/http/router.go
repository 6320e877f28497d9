package http

import "github.com/gin-gonic/gin"

// Register attaches company routes to the given router group. Mutating
// routes sit behind the supplied auth middleware.
func (h *Handler) Register(rg *gin.RouterGroup, authed gin.HandlerFunc) {
	rg.GET("/companies/:name", h.getByName)
	rg.GET("/companies", h.list)
	rg.POST("/companies/batch", authed, h.batchIngest)
	rg.POST("/companies/ingest", authed, h.ingest)
	rg.POST("/relationships/competition", authed, h.createCompetition)
	rg.DELETE("/graph/reset", authed, h.resetGraph)
}
