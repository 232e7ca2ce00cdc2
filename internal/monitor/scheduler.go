package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/teemow/classwatch/internal/logging"
)

// Task is one supervised periodic job.
type Task func(ctx context.Context) error

// Scheduler runs the background loops on fixed intervals. Jobs are
// recovered on panic, and a run that overlaps a still-running previous
// run is skipped rather than stacked.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	ctx    context.Context
}

// NewScheduler creates a scheduler whose tasks receive ctx.
func NewScheduler(ctx context.Context, logger *slog.Logger) *Scheduler {
	logger = logging.WithComponent(logger, "scheduler")
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
		ctx:    ctx,
	}
}

// Add registers a task to run every interval. Errors are logged, not
// fatal; the next run happens regardless.
func (s *Scheduler) Add(name string, interval time.Duration, task Task) error {
	if _, err := s.cron.AddFunc("@every "+interval.String(), func() {
		if err := task(s.ctx); err != nil {
			s.logger.Error("scheduled task failed",
				logging.Operation(name),
				logging.Err(err))
		}
	}); err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	return nil
}

// Start begins running the registered tasks.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running tasks to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// cronLogger adapts slog to the cron.Logger interface. Routine
// scheduling chatter goes to debug.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{logging.KeyError, err}, keysAndValues...)
	l.logger.Error(msg, args...)
}
