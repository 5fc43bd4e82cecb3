package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper runs one reminder sweep over unpaid bills
type Sweeper interface {
	Sweep(ctx context.Context) error
}

// ReminderSchedulerConfig holds configuration for the reminder sweep scheduler
type ReminderSchedulerConfig struct {
	// Enabled indicates if the scheduler is enabled
	Enabled bool
	// CronSchedule is a standard 5-field cron expression
	CronSchedule string
	// JobTimeout is the maximum time a single sweep can run
	JobTimeout time.Duration
}

// DefaultReminderSchedulerConfig returns default scheduler configuration.
// Defaults to running at 7:00 AM daily.
func DefaultReminderSchedulerConfig() ReminderSchedulerConfig {
	return ReminderSchedulerConfig{
		Enabled:      true,
		CronSchedule: "0 7 * * *",
		JobTimeout:   5 * time.Minute,
	}
}

// ReminderScheduler runs the unpaid-bill reminder sweep on a cron schedule
type ReminderScheduler struct {
	config  ReminderSchedulerConfig
	sweeper Sweeper
	logger  *zap.Logger
	cron    *cron.Cron
	entryID cron.EntryID

	mu        sync.Mutex
	isRunning bool
	lastRunAt *time.Time
	lastError string
}

// NewReminderScheduler creates a new cron-based reminder scheduler
func NewReminderScheduler(config ReminderSchedulerConfig, sweeper Sweeper, logger *zap.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		config:  config,
		sweeper: sweeper,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start registers the sweep job and starts the cron runner
func (s *ReminderScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.config.Enabled {
		s.logger.Info("Reminder scheduler disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.CronSchedule, s.runSweep)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.CronSchedule, err)
	}
	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Reminder scheduler started",
		zap.String("cron_schedule", s.config.CronSchedule),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop stops the cron runner and waits for any in-flight sweep to finish
func (s *ReminderScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		s.logger.Info("Reminder scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Reminder scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerManualRun runs a sweep outside the cron schedule.
// Uses a background context so the sweep survives the triggering HTTP request.
func (s *ReminderScheduler) TriggerManualRun() error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()

	if !running {
		return ErrSchedulerNotRunning
	}
	go s.runSweep()
	return nil
}

func (s *ReminderScheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.JobTimeout)
	defer cancel()

	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	if err := s.sweeper.Sweep(ctx); err != nil {
		s.logger.Error("Reminder sweep failed", zap.Error(err))
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// GetStatus returns the current status of the scheduler
func (s *ReminderScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]any{
		"enabled":       s.config.Enabled,
		"is_running":    s.isRunning,
		"cron_schedule": s.config.CronSchedule,
		"last_run_at":   s.lastRunAt,
		"last_error":    s.lastError,
	}
	if s.isRunning {
		next := s.cron.Entry(s.entryID).Next
		status["next_run_at"] = next
	}
	return status
}
