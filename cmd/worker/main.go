package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/supplygraph-labs/graph-analytics-backend/config"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/bootstrap"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/cache"
	cronjob "github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/cron"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/repository"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/service"
)

// Standalone projection maintenance: "refresh" rebuilds the graph
// projection once and exits, "schedule" keeps it fresh on a cron spec.
// Projection names are process-local, so run this against an idle
// instance, not alongside a live API (which schedules its own refresh).
func main() {
	mode := "schedule"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	db, err := bootstrap.OpenNeo4j(ctx, cfg.Neo4j)
	if err != nil {
		log.Fatal("neo4j", "err", err)
	}
	defer db.Close(context.Background())

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("redis", "err", err)
	}
	defer rdb.Close()

	projection := repository.NewProjectionManager(db)
	repo := repository.NewAnalyticsRepository(db, projection)
	centralityCache := cache.NewCentralityCache(rdb, cfg.Analytics.CacheTTL)
	pool := service.NewPool(cfg.Analytics.WorkerPoolSize, cfg.Analytics.AlgorithmTimeout)
	analytics := service.NewAnalyticsService(repo, centralityCache, pool)

	switch mode {
	case "refresh":
		result, err := analytics.RefreshProjection(ctx)
		if err != nil {
			log.Fatal("refresh", "err", err)
		}
		log.Info("projection refreshed",
			"graph", result.GraphName,
			"nodes", result.NodeCount,
			"relationships", result.RelationshipCount,
		)
	case "schedule":
		sched := cronjob.NewScheduler(analytics, cfg.Analytics.RefreshCronSpec)
		if err := sched.Start(); err != nil {
			log.Fatal("scheduler", "err", err)
		}
		<-ctx.Done()
		sched.Stop()
	default:
		log.Fatal("unknown command", "command", mode)
	}
}
