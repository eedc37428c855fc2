package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"StockWatch/internal/model"
	"StockWatch/internal/orchestrator"
)

// Scheduler refreshes the configured watchlist on a cron spec and holds the
// latest snapshot of results for the dashboard's landing view. The snapshot
// lives in memory only.
type Scheduler struct {
	cron    *cron.Cron
	orch    *orchestrator.Orchestrator
	symbols []string
	period  model.Period
	ctx     context.Context
	log     *zap.Logger

	mu          sync.RWMutex
	snapshot    []model.FetchResult
	refreshedAt time.Time
}

func New(ctx context.Context, orch *orchestrator.Orchestrator, symbols []string, period model.Period, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		orch:    orch,
		symbols: symbols,
		period:  period,
		ctx:     ctx,
		log:     log,
	}
}

// Register adds the refresh job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("register watchlist refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("watchlist scheduler started",
		zap.Strings("symbols", s.symbols),
		zap.String("period", s.period.String()))
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("watchlist scheduler stopped")
}

// RefreshNow executes a refresh immediately (initial fill / manual trigger).
func (s *Scheduler) RefreshNow() {
	s.refresh()
}

func (s *Scheduler) refresh() {
	if s.ctx.Err() != nil {
		return
	}
	start := time.Now()
	results := s.orch.FetchAll(s.ctx, s.symbols, s.period)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	s.mu.Lock()
	s.snapshot = results
	s.refreshedAt = time.Now().UTC()
	s.mu.Unlock()

	s.log.Info("watchlist refreshed",
		zap.Int("symbols", len(results)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
}

// Snapshot returns a copy of the latest results and when they were taken.
// ok is false until the first refresh completes.
func (s *Scheduler) Snapshot() (results []model.FetchResult, refreshedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, time.Time{}, false
	}
	out := make([]model.FetchResult, len(s.snapshot))
	copy(out, s.snapshot)
	return out, s.refreshedAt, true
}
