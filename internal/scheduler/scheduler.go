package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/skyline/internal/services"
)

type Refresher interface {
	Refresh(ctx context.Context) services.Outcome
}

// Scheduler re-runs the weather pipeline for the displayed city on a cron
// schedule. An empty schedule disables it.
type Scheduler struct {
	refresher  Refresher
	logger     *zap.Logger
	schedule   string
	runTimeout time.Duration
	cron       *cron.Cron

	mu      sync.Mutex
	running bool
	lastRun time.Time
	entry   cron.EntryID
}

func NewScheduler(refresher Refresher, schedule string, runTimeout time.Duration, logger *zap.Logger) (*Scheduler, error) {
	if runTimeout <= 0 {
		runTimeout = 30 * time.Second
	}

	cronLogger := zapCronLogger{logger: logger.Sugar()}
	s := &Scheduler{
		refresher:  refresher,
		logger:     logger,
		schedule:   schedule,
		runTimeout: runTimeout,
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}

	if schedule == "" {
		return s, nil
	}

	id, err := s.cron.AddFunc(schedule, s.runRefresh)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	s.entry = id
	return s, nil
}

func (s *Scheduler) Enabled() bool {
	return s.schedule != ""
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled() {
		s.logger.Info("Refresh scheduler disabled")
		return
	}
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()

	s.logger.Info("Refresh scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(s.entry).Next))
}

// Stop halts the schedule and waits for an in-flight refresh or ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping refresh scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Refresh scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// RunNow triggers one refresh synchronously, outside the schedule.
func (s *Scheduler) RunNow() services.Outcome {
	s.logger.Info("Manually triggering refresh")
	return s.refresh()
}

func (s *Scheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *Scheduler) runRefresh() {
	s.refresh()
}

func (s *Scheduler) refresh() services.Outcome {
	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	out := s.refresher.Refresh(ctx)
	if out.Skipped {
		s.logger.Info("Scheduled refresh skipped, pipeline in flight", zap.String("query", out.Query))
		return out
	}
	s.logger.Info("Scheduled refresh completed",
		zap.String("search_id", out.SearchID),
		zap.String("query", out.Query),
		zap.String("state", out.State.String()),
		zap.Bool("applied", out.Applied),
		zap.Duration("duration", time.Since(startTime)))
	return out
}

// zapCronLogger adapts zap to cron.Logger.
type zapCronLogger struct {
	logger *zap.SugaredLogger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
