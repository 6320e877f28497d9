package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/supplygraph-labs/graph-analytics-backend/config"
	"github.com/supplygraph-labs/graph-analytics-backend/internal/bootstrap"
	cronjob "github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/cron"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	if lvl, err := log.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

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

	router, analytics := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "graph-analytics-backend",
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
	})

	// The projection lives in this process; build it at startup and keep
	// it fresh on the configured schedule.
	go func() {
		if _, err := analytics.RefreshProjection(ctx); err != nil {
			log.Error("initial projection refresh failed", "err", err)
		}
	}()

	sched := cronjob.NewScheduler(analytics, cfg.Analytics.RefreshCronSpec)
	if err := sched.Start(); err != nil {
		log.Fatal("scheduler", "err", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.Server.Port, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
