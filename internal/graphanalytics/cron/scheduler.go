package cronjob

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/supplygraph-labs/graph-analytics-backend/internal/graphanalytics/service"
)

// Scheduler rebuilds the in-memory graph projection on a cron spec so
// centrality scores track overnight ingestion runs.
type Scheduler struct {
	analytics *service.AnalyticsService
	spec      string
	cron      *cron.Cron
}

func NewScheduler(analytics *service.AnalyticsService, spec string) *Scheduler {
	return &Scheduler{analytics: analytics, spec: spec}
}

// Start registers the refresh job and begins the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.spec, func() {
		s.runRefresh()
	})
	if err != nil {
		return err
	}

	log.Info("cron scheduler started", "spec", s.spec)
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runRefresh() {
	log.Info("nightly projection refresh started")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.analytics.RefreshProjection(ctx)
	if err != nil {
		log.Error("projection refresh failed", "err", err)
		return
	}

	log.Info("projection refresh completed",
		"graph", result.GraphName,
		"nodes", result.NodeCount,
		"relationships", result.RelationshipCount,
	)
}
