package commands

import (
	"context"
	"log/slog"

	"offroute/internal/core/domain/model/offroute"
)

type ResetOffRouteEventCommandHandler struct {
	uowFactory EventUoWFactory
	logger     *slog.Logger
}

func NewResetOffRouteEventCommandHandler(uowFactory EventUoWFactory, logger *slog.Logger) ResetOffRouteEventCommandHandler {
	return ResetOffRouteEventCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "ResetOffRouteEventCommandHandler"),
	}
}

// Handle closes the trip's active event. It returns nil and no error when
// the trip has nothing to reset.
func (h *ResetOffRouteEventCommandHandler) Handle(ctx context.Context, cmd ResetOffRouteEventCommand) (*offroute.Event, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OffRouteEventRepository()
	event, err := repo.GetActiveByTrip(ctx, cmd.TripID())
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}

	if err = event.Reset(cmd.At()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, event); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "off-route event reset", "eventId", event.ID().String(), "tripId", cmd.TripID().String())
	return event, nil
}
