package commands

import (
	"context"
	"log/slog"

	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type CheckAndSendWarningsCommandHandler struct {
	sweeper sweeper
	policy  offroute.Policy
}

func NewCheckAndSendWarningsCommandHandler(
	uowFactory EventUoWFactory,
	policy offroute.Policy,
	notifier *WarningNotifier,
	logger *slog.Logger,
) CheckAndSendWarningsCommandHandler {
	return CheckAndSendWarningsCommandHandler{
		sweeper: sweeper{
			uowFactory: uowFactory,
			notifier:   notifier,
			logger:     logger.With("component", "CheckAndSendWarningsCommandHandler"),
		},
		policy: policy,
	}
}

// Handle scans all active events. Only a failure to list them is returned;
// per-event failures are counted in the result.
func (h *CheckAndSendWarningsCommandHandler) Handle(ctx context.Context, cmd CheckAndSendWarningsCommand) (result SweepResult, err error) {
	if err = cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "offroute.check_and_send_warnings")
	defer func() {
		span.SetAttributes(
			attribute.Int("events.scanned", result.Scanned),
			attribute.Int("events.escalated", result.Escalated),
			attribute.Int("events.conflicted", result.Conflicted),
			attribute.Int("events.failed", result.Failed),
		)
		tracing.EndSpan(span, err)
	}()

	ids, err := h.sweeper.list(ctx, func(ctx context.Context, uow EventUoW) ([]*offroute.Event, error) {
		active, err := uow.OffRouteEventRepository().GetAllActive(ctx)
		if err != nil {
			return nil, err
		}
		candidates := make([]*offroute.Event, 0, len(active))
		for _, e := range active {
			if e.Status() == offroute.YellowWarning {
				candidates = append(candidates, e)
			}
		}
		return candidates, nil
	})
	if err != nil {
		return SweepResult{}, err
	}

	result = h.sweeper.run(ctx, ids, func(event *offroute.Event) (bool, error) {
		return event.EscalateIfSustained(cmd.Now(), h.policy)
	})
	return result, nil
}
