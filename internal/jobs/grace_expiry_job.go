package jobs

import (
	"context"
	"log/slog"
	"time"

	"offroute/internal/core/application/usecases/commands"
)

type GraceExpiryHandler interface {
	Handle(ctx context.Context, cmd commands.CheckContactedWaitingReturnCommand) (commands.SweepResult, error)
}

// GraceExpiryJob runs CheckContactedWaitingReturn on a schedule.
type GraceExpiryJob struct {
	*sweepJob
}

func NewGraceExpiryJob(handler GraceExpiryHandler, spec string, now Clock, logger *slog.Logger) *GraceExpiryJob {
	run := func(ctx context.Context, at time.Time) (commands.SweepResult, error) {
		cmd, err := commands.NewCheckContactedWaitingReturnCommand(at)
		if err != nil {
			return commands.SweepResult{}, err
		}
		return handler.Handle(ctx, cmd)
	}
	return &GraceExpiryJob{
		sweepJob: newSweepJob(spec, run, now, logger.With("component", "grace_expiry_job")),
	}
}

func (j *GraceExpiryJob) Start() error { return j.start() }

func (j *GraceExpiryJob) Stop() { j.stop() }

func (j *GraceExpiryJob) RunOnce(ctx context.Context) { j.runOnce(ctx) }
