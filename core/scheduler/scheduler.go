package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gatherly/core/logger"

	"github.com/robfig/cron/v3"
)

// CronTask is one scheduled job definition.
type CronTask struct {
	Name        string
	Description string
	CronExpr    string
	Handler     func(ctx context.Context) error
	Enabled     bool
}

// CronScheduler runs registered tasks on cron expressions.
type CronScheduler struct {
	cron   *cron.Cron
	logger logger.Logger

	mu    sync.Mutex
	tasks map[string]*CronTask
}

// NewCronScheduler creates a stopped scheduler; call Start after
// registering tasks.
func NewCronScheduler(log logger.Logger) *CronScheduler {
	return &CronScheduler{
		cron:   cron.New(),
		logger: log,
		tasks:  make(map[string]*CronTask),
	}
}

// RegisterTask adds a task. Disabled tasks are recorded but not scheduled.
func (s *CronScheduler) RegisterTask(task *CronTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.Name]; exists {
		return fmt.Errorf("task already registered: %s", task.Name)
	}
	s.tasks[task.Name] = task

	if !task.Enabled {
		return nil
	}

	_, err := s.cron.AddFunc(task.CronExpr, func() {
		start := time.Now()
		if err := task.Handler(context.Background()); err != nil {
			s.logger.Error("Scheduled task failed",
				logger.String("task", task.Name),
				logger.String("error", err.Error()))
			return
		}
		s.logger.Info("Scheduled task completed",
			logger.String("task", task.Name),
			logger.Duration("duration", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule task %s: %w", task.Name, err)
	}

	return nil
}

// Start begins running scheduled tasks.
func (s *CronScheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running tasks to finish.
func (s *CronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
