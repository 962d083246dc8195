package jobs

import (
	"context"
	"log/slog"
	"time"

	"offroute/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs a sweep every 30 seconds.
const DefaultSchedule = "*/30 * * * * *"

type Clock func() time.Time

// sweepJob is the cron plumbing shared by both sweeps.
type sweepJob struct {
	spec   string
	run    func(ctx context.Context, now time.Time) (commands.SweepResult, error)
	now    Clock
	cron   *cron.Cron
	logger *slog.Logger
}

func newSweepJob(
	spec string,
	run func(ctx context.Context, now time.Time) (commands.SweepResult, error),
	now Clock,
	logger *slog.Logger,
) *sweepJob {
	if spec == "" {
		spec = DefaultSchedule
	}
	return &sweepJob{
		spec:   spec,
		run:    run,
		now:    now,
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

func (j *sweepJob) start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.runOnce(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Job started", "schedule", j.spec)
	return nil
}

func (j *sweepJob) stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Job stopped")
}

func (j *sweepJob) runOnce(ctx context.Context) {
	result, err := j.run(ctx, j.now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Sweep failed", "error", err)
		return
	}
	if result.Escalated > 0 || result.Conflicted > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Sweep finished",
			"scanned", result.Scanned,
			"escalated", result.Escalated,
			"conflicted", result.Conflicted,
			"failed", result.Failed,
		)
	}
}
