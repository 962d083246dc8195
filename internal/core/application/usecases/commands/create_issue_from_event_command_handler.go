package commands

import (
	"context"
	"log/slog"

	"offroute/internal/core/domain/model/incident"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/core/ports"
)

type CreateIssueFromEventCommandHandler struct {
	uowFactory IssueUoWFactory
	directory  ports.TripDirectory
	logger     *slog.Logger
}

func NewCreateIssueFromEventCommandHandler(
	uowFactory IssueUoWFactory,
	directory ports.TripDirectory,
	logger *slog.Logger,
) CreateIssueFromEventCommandHandler {
	return CreateIssueFromEventCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		logger:     logger.With("component", "CreateIssueFromEventCommandHandler"),
	}
}

// Handle creates the incident and closes the event in one transaction and
// returns the closed event together with the new incident.
func (h *CreateIssueFromEventCommandHandler) Handle(
	ctx context.Context,
	cmd CreateIssueFromEventCommand,
) (*offroute.Event, *incident.Incident, error) {
	if err := cmd.Validate(); err != nil {
		return nil, nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	events := uow.OffRouteEventRepository()
	event, err := events.Get(ctx, cmd.EventID())
	if err != nil {
		return nil, nil, err
	}

	// Checked up front so that no incident is written for a closed event.
	if _, err = event.Status().Apply(offroute.StaffCreateIssue); err != nil {
		return nil, nil, err
	}

	description := cmd.Description()
	if description == "" {
		description = h.defaultDescription(ctx, event, cmd)
	}

	issue, err := incident.NewIncident(
		kernel.NewUUID(),
		event.ID(),
		event.TripID(),
		description,
		cmd.StaffID(),
		event.LastKnownPosition(),
		cmd.At(),
	)
	if err != nil {
		return nil, nil, err
	}

	if err = uow.IncidentRepository().Create(ctx, issue); err != nil {
		return nil, nil, err
	}
	if err = event.CreateIssue(issue.ID(), cmd.StaffID(), cmd.At()); err != nil {
		return nil, nil, err
	}
	if err = events.Update(ctx, event); err != nil {
		return nil, nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	h.logger.InfoContext(ctx, "incident created from off-route event",
		"eventId", event.ID().String(), "incidentId", issue.ID().String(), "staffId", cmd.StaffID().String())
	return event, issue, nil
}

func (h *CreateIssueFromEventCommandHandler) defaultDescription(
	ctx context.Context,
	event *offroute.Event,
	cmd CreateIssueFromEventCommand,
) string {
	var orderCode, plate string
	summary, err := h.directory.GetTripSummary(ctx, event.TripID())
	if err != nil {
		h.logger.WarnContext(ctx, "trip summary unavailable for incident description",
			"tripId", event.TripID().String(), "error", err)
	} else {
		orderCode, plate = summary.OrderCode, summary.VehiclePlate
	}

	return incident.DefaultDescription(
		orderCode,
		plate,
		event.DistanceMeters(),
		event.OffRouteDuration(cmd.At()),
		event.ContactedAt() != nil,
	)
}
