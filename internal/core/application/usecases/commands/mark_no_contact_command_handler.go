package commands

import (
	"context"

	"offroute/internal/core/domain/model/offroute"
)

type MarkNoContactCommandHandler struct {
	uowFactory EventUoWFactory
}

func NewMarkNoContactCommandHandler(uowFactory EventUoWFactory) MarkNoContactCommandHandler {
	return MarkNoContactCommandHandler{uowFactory: uowFactory}
}

func (h *MarkNoContactCommandHandler) Handle(ctx context.Context, cmd MarkNoContactCommand) (*offroute.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyToEvent(ctx, h.uowFactory, cmd.EventID(), func(event *offroute.Event) error {
		return event.MarkNoContact(cmd.StaffID(), cmd.Notes(), cmd.At())
	})
}
