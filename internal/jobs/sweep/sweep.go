package sweep

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/amandanordqvist/datingapp/internal/domain/rules"
)

// Sweeper drops expired moments and reports how many were removed.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Job periodically expires moments. The same sweep also runs client-side
// in memory; this job keeps the stored collection from accumulating dead
// entries between launches.
type Job struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *zap.Logger
}

func New(sweeper Sweeper, interval time.Duration, logger *zap.Logger) *Job {
	if interval <= 0 {
		interval = rules.SweepInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

// RunOnce performs a single sweep pass.
func (j *Job) RunOnce(ctx context.Context) error {
	removed, err := j.sweeper.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("sweep expired moments: %w", err)
	}
	if removed > 0 {
		j.logger.Info("expired moments swept", zap.Int("removed", removed))
	}
	return nil
}

// Run sweeps on the configured interval until the context is canceled.
func (j *Job) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil {
				j.logger.Warn("sweep pass failed", zap.Error(err))
			}
		}
	}
}
