// Package jobs runs periodic maintenance outside the booking path, such as
// removing seat locks whose holders never released them.
package jobs

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Every runs task on a fixed interval. A run that outlasts the interval
// delays the next one instead of overlapping it.
func (s *Scheduler) Every(name string, interval time.Duration, task func(ctx context.Context)) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			task(ctx)
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.logger.Info("job scheduled", slog.String("name", name), slog.Duration("interval", interval))

	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

// LockSweep adapts a lock store's expired-row cleanup into a job task.
func LockSweep(strategy string, deleteExpired func(ctx context.Context) (int64, error), logger *slog.Logger) func(ctx context.Context) {
	return func(ctx context.Context) {
		n, err := deleteExpired(ctx)
		if err != nil {
			logger.Warn("lock sweep failed", slog.String("strategy", strategy), slog.Any("error", err))
			return
		}

		if n > 0 {
			logger.Info("expired seat locks removed", slog.String("strategy", strategy), slog.Int64("count", n))
		}
	}
}
