package commands

import (
	"context"

	"offroute/internal/core/domain/model/offroute"
)

type ExtendGracePeriodCommandHandler struct {
	uowFactory EventUoWFactory
	policy     offroute.Policy
}

func NewExtendGracePeriodCommandHandler(uowFactory EventUoWFactory, policy offroute.Policy) ExtendGracePeriodCommandHandler {
	return ExtendGracePeriodCommandHandler{uowFactory: uowFactory, policy: policy}
}

// Handle fails with a LimitExceededError once the maximum number of
// extensions was granted; the stored event is not touched in that case.
func (h *ExtendGracePeriodCommandHandler) Handle(ctx context.Context, cmd ExtendGracePeriodCommand) (*offroute.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyToEvent(ctx, h.uowFactory, cmd.EventID(), func(event *offroute.Event) error {
		return event.ExtendGracePeriod(cmd.StaffID(), cmd.At(), h.policy)
	})
}
