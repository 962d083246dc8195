package commands

import (
	"context"

	"offroute/internal/core/domain/model/offroute"
)

type ConfirmContactCommandHandler struct {
	uowFactory EventUoWFactory
	policy     offroute.Policy
}

func NewConfirmContactCommandHandler(uowFactory EventUoWFactory, policy offroute.Policy) ConfirmContactCommandHandler {
	return ConfirmContactCommandHandler{uowFactory: uowFactory, policy: policy}
}

// Handle moves the event to ContactedWaitingReturn and starts the grace period.
func (h *ConfirmContactCommandHandler) Handle(ctx context.Context, cmd ConfirmContactCommand) (*offroute.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyToEvent(ctx, h.uowFactory, cmd.EventID(), func(event *offroute.Event) error {
		return event.ConfirmContact(cmd.StaffID(), cmd.At(), h.policy)
	})
}
