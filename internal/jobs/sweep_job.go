package jobs

import (
	"context"
	"log/slog"
	"time"

	"multicleaner/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// Sweep runs one pass of a sweeper.
type Sweep func(ctx context.Context) (commands.SweepResult, error)

// SweepJob runs one sweeper on a cron schedule. A tick that arrives while the
// previous pass is still running is skipped.
type SweepJob struct {
	name     string
	schedule string
	sweep    Sweep
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
}

// NewSweepJob creates a job for sweep. schedule is a six-field cron spec with seconds
// or a descriptor such as "@every 1m".
func NewSweepJob(name, schedule string, sweep Sweep, logger *slog.Logger) *SweepJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &SweepJob{
		name:     name,
		schedule: schedule,
		sweep:    sweep,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger.With("component", "sweep_job", "sweep", name),
	}
}

func (j *SweepJob) Name() string {
	return j.name
}

// Start schedules the job.
func (j *SweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Sweep job started", "schedule", j.schedule)
	return nil
}

// Run performs a single pass and logs a failed one.
func (j *SweepJob) Run(ctx context.Context) commands.SweepResult {
	started := time.Now()
	res, err := j.sweep(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Sweep job failed", "error", err, "elapsed", time.Since(started))
	}
	return res
}

// Stop cancels an in-flight pass and waits for it to return.
func (j *SweepJob) Stop() {
	j.cancel()
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Sweep job stopped")
}
