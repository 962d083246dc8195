package commands

import (
	"context"

	"offroute/internal/core/domain/model/offroute"
)

type ConfirmSafeCommandHandler struct {
	uowFactory EventUoWFactory
}

func NewConfirmSafeCommandHandler(uowFactory EventUoWFactory) ConfirmSafeCommandHandler {
	return ConfirmSafeCommandHandler{uowFactory: uowFactory}
}

// Handle resolves the event as safe. It fails with an InvalidTransitionError
// when the event is already closed.
func (h *ConfirmSafeCommandHandler) Handle(ctx context.Context, cmd ConfirmSafeCommand) (*offroute.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyToEvent(ctx, h.uowFactory, cmd.EventID(), func(event *offroute.Event) error {
		return event.ConfirmSafe(cmd.StaffID(), cmd.Notes(), cmd.At())
	})
}
