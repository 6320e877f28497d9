package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/supplygraph-labs/graph-analytics-backend/config"
	httpapi "github.com/supplygraph-labs/graph-analytics-backend/internal/api/http"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/api/http/middleware"
	companieshttp "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/http"
	companiesrepo "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/repository"
	companiessvc "github.com/supplygraph-labs/graph-analytics-backend/internal/companies/service"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/cache"
	analyticshttp "github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/http"
	analyticsrepo "github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/repository"
	analyticssvc "github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/service"
	storage "github.com/supplygraph-labs/graph-analytics-backend/internal/storage/neo4j"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	DB          *storage.Client
	Redis       *redis.Client
}

// BuildRouter wires repositories, services and handlers into a gin
// engine. Services returned here share one projection manager and one
// worker pool, so concurrent requests see a consistent graph.
func BuildRouter(dep RouterDeps) (*gin.Engine, *analyticssvc.AnalyticsService) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	companyRepo := companiesrepo.NewCompanyRepository(dep.DB)
	companyService := companiessvc.NewCompanyService(companyRepo)

	projection := analyticsrepo.NewProjectionManager(dep.DB)
	analyticsRepo := analyticsrepo.NewAnalyticsRepository(dep.DB, projection)
	centralityCache := cache.NewCentralityCache(dep.Redis, dep.Config.Analytics.CacheTTL)
	pool := analyticssvc.NewPool(dep.Config.Analytics.WorkerPoolSize, dep.Config.Analytics.AlgorithmTimeout)
	analyticsService := analyticssvc.NewAnalyticsService(analyticsRepo, centralityCache, pool)
	agentService := analyticssvc.NewAgentService(analyticsService, companyService)

	authed := middleware.APIKey(dep.Config.Server.APIKey)
	rateLimited := middleware.RateLimit(dep.Config.Analytics.RateLimitPerSec, dep.Config.Analytics.RateLimitBurst)

	api := r.Group("/api/v1/graph-analytics")
	companieshttp.NewHandler(companyService).Register(api, authed)
	analyticshttp.NewHandler(analyticsService, agentService).Register(api, authed, rateLimited)

	return r, analyticsService
}
