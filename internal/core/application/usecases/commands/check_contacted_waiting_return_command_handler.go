package commands

import (
	"context"
	"log/slog"

	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type CheckContactedWaitingReturnCommandHandler struct {
	sweeper sweeper
}

func NewCheckContactedWaitingReturnCommandHandler(
	uowFactory EventUoWFactory,
	notifier *WarningNotifier,
	logger *slog.Logger,
) CheckContactedWaitingReturnCommandHandler {
	return CheckContactedWaitingReturnCommandHandler{
		sweeper: sweeper{
			uowFactory: uowFactory,
			notifier:   notifier,
			logger:     logger.With("component", "CheckContactedWaitingReturnCommandHandler"),
		},
	}
}

func (h *CheckContactedWaitingReturnCommandHandler) Handle(
	ctx context.Context,
	cmd CheckContactedWaitingReturnCommand,
) (result SweepResult, err error) {
	if err = cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "offroute.check_contacted_waiting_return")
	defer func() {
		span.SetAttributes(
			attribute.Int("events.scanned", result.Scanned),
			attribute.Int("events.escalated", result.Escalated),
			attribute.Int("events.conflicted", result.Conflicted),
		)
		tracing.EndSpan(span, err)
	}()

	ids, err := h.sweeper.list(ctx, func(ctx context.Context, uow EventUoW) ([]*offroute.Event, error) {
		return uow.OffRouteEventRepository().GetByStatusAndGraceExpiredBefore(ctx, offroute.ContactedWaitingReturn, cmd.Now())
	})
	if err != nil {
		return SweepResult{}, err
	}

	result = h.sweeper.run(ctx, ids, func(event *offroute.Event) (bool, error) {
		return event.ExpireGracePeriod(cmd.Now())
	})
	return result, nil
}
