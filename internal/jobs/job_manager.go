package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"multicleaner/internal/core/application/usecases/commands"
)

// DefaultSchedule runs every sweep at the top of each minute.
const DefaultSchedule = "0 * * * * *"

// Sweepers is every periodic entry point of the engine.
type Sweepers struct {
	ExpiredOffers              commands.ProcessExpiredOffersCommandHandler
	WithdrawFilledJobOffers    commands.WithdrawOffersForFilledJobsCommandHandler
	AutoApproveExpiredRequests commands.AutoApproveExpiredRequestsCommandHandler
	EdgeCaseDecisions          commands.ProcessEdgeCaseDecisionsCommandHandler
	ExpiredEdgeCaseDecisions   commands.ProcessExpiredEdgeCaseDecisionsCommandHandler
	ExpiredExtraWorkOffers     commands.HandleExpiredExtraWorkOffersCommandHandler
	SoloCompletionOffers       commands.ProcessSoloCompletionOffersCommandHandler
	UrgentFillNotifications    commands.ProcessUrgentFillNotificationsCommandHandler
	FinalWarnings              commands.ProcessFinalWarningsCommandHandler
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []*SweepJob
}

// NewJobManager creates one job per sweeper, all on the same schedule.
// Expired offers are swept before filled-job withdrawals, and edge-case prompts
// before their expiry, so a single pass settles dependent state in order.
func NewJobManager(s Sweepers, schedule string, logger *slog.Logger) *JobManager {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	job := func(name string, sweep Sweep) *SweepJob {
		return NewSweepJob(name, schedule, sweep, logger)
	}

	return &JobManager{jobs: []*SweepJob{
		job("expired_offers", func(ctx context.Context) (commands.SweepResult, error) {
			return s.ExpiredOffers.Handle(ctx, commands.NewProcessExpiredOffersCommand())
		}),
		job("withdraw_filled_job_offers", func(ctx context.Context) (commands.SweepResult, error) {
			return s.WithdrawFilledJobOffers.Handle(ctx, commands.NewWithdrawOffersForFilledJobsCommand())
		}),
		job("auto_approve_requests", func(ctx context.Context) (commands.SweepResult, error) {
			return s.AutoApproveExpiredRequests.Handle(ctx, commands.NewAutoApproveExpiredRequestsCommand())
		}),
		job("edge_case_decisions", func(ctx context.Context) (commands.SweepResult, error) {
			return s.EdgeCaseDecisions.Handle(ctx, commands.NewProcessEdgeCaseDecisionsCommand())
		}),
		job("expired_edge_case_decisions", func(ctx context.Context) (commands.SweepResult, error) {
			return s.ExpiredEdgeCaseDecisions.Handle(ctx, commands.NewProcessExpiredEdgeCaseDecisionsCommand())
		}),
		job("expired_extra_work_offers", func(ctx context.Context) (commands.SweepResult, error) {
			return s.ExpiredExtraWorkOffers.Handle(ctx, commands.NewHandleExpiredExtraWorkOffersCommand())
		}),
		job("solo_completion_offers", func(ctx context.Context) (commands.SweepResult, error) {
			return s.SoloCompletionOffers.Handle(ctx, commands.NewProcessSoloCompletionOffersCommand())
		}),
		job("urgent_fill_notifications", func(ctx context.Context) (commands.SweepResult, error) {
			return s.UrgentFillNotifications.Handle(ctx, commands.NewProcessUrgentFillNotificationsCommand())
		}),
		job("final_warnings", func(ctx context.Context) (commands.SweepResult, error) {
			return s.FinalWarnings.Handle(ctx, commands.NewProcessFinalWarningsCommand())
		}),
	}}
}

// Jobs lists the managed jobs in run order.
func (jm *JobManager) Jobs() []*SweepJob {
	return jm.jobs
}

// StartAll starts all scheduled jobs. A job that fails to start stops the ones already running.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.Name(), err)
		}
	}
	return nil
}

// RunAll performs one pass of every sweep in order. It is used to catch up after downtime.
func (jm *JobManager) RunAll(ctx context.Context) map[string]commands.SweepResult {
	results := make(map[string]commands.SweepResult, len(jm.jobs))
	for _, j := range jm.jobs {
		if ctx.Err() != nil {
			break
		}
		results[j.Name()] = j.Run(ctx)
	}
	return results
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for _, j := range jm.jobs {
		j.Stop()
	}
}
