package jobs

import (
	"context"
	"log/slog"
	"time"

	"offroute/internal/core/application/usecases/commands"
)

type WarningsHandler interface {
	Handle(ctx context.Context, cmd commands.CheckAndSendWarningsCommand) (commands.SweepResult, error)
}

// WarningEscalationJob runs CheckAndSendWarnings on a schedule.
type WarningEscalationJob struct {
	*sweepJob
}

func NewWarningEscalationJob(handler WarningsHandler, spec string, now Clock, logger *slog.Logger) *WarningEscalationJob {
	run := func(ctx context.Context, at time.Time) (commands.SweepResult, error) {
		cmd, err := commands.NewCheckAndSendWarningsCommand(at)
		if err != nil {
			return commands.SweepResult{}, err
		}
		return handler.Handle(ctx, cmd)
	}
	return &WarningEscalationJob{
		sweepJob: newSweepJob(spec, run, now, logger.With("component", "warning_escalation_job")),
	}
}

func (j *WarningEscalationJob) Start() error { return j.start() }

func (j *WarningEscalationJob) Stop() { j.stop() }

// RunOnce performs a single sweep immediately.
func (j *WarningEscalationJob) RunOnce(ctx context.Context) { j.runOnce(ctx) }
