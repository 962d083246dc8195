package commands

import (
	"context"
	"errors"
	"log/slog"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/core/domain/services"
	"offroute/internal/core/ports"
	"offroute/internal/pkg/errs"
)

// maxIngestAttempts bounds re-reads after a version conflict. A retry
// re-evaluates the sample against the freshly stored event.
const maxIngestAttempts = 2

// ProcessLocationUpdateCommandHandler is the location ingest entry point.
type ProcessLocationUpdateCommandHandler struct {
	uowFactory IngestUoWFactory
	geometry   ports.RouteGeometryProvider
	directory  ports.TripDirectory
	calculator services.DeviationCalculator
	policy     offroute.Policy
	notifier   *WarningNotifier
	logger     *slog.Logger
}

func NewProcessLocationUpdateCommandHandler(
	uowFactory IngestUoWFactory,
	geometry ports.RouteGeometryProvider,
	directory ports.TripDirectory,
	calculator services.DeviationCalculator,
	policy offroute.Policy,
	notifier *WarningNotifier,
	logger *slog.Logger,
) ProcessLocationUpdateCommandHandler {
	return ProcessLocationUpdateCommandHandler{
		uowFactory: uowFactory,
		geometry:   geometry,
		directory:  directory,
		calculator: calculator,
		policy:     policy,
		notifier:   notifier,
		logger:     logger.With("component", "ProcessLocationUpdateCommandHandler"),
	}
}

// Handle returns the distance from the planned route, or nil when the route
// geometry is unavailable. The position is stored in every case.
func (h *ProcessLocationUpdateCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessLocationUpdateCommand,
) (*float64, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	summary, err := h.directory.GetTripSummary(ctx, cmd.TripID())
	if err != nil {
		return nil, err
	}

	distance, err := h.distanceFromRoute(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var warnings []offroute.WarningRaised
	for attempt := 1; ; attempt++ {
		warnings, err = h.persist(ctx, cmd, summary, distance)
		if err == nil {
			break
		}
		if !errors.Is(err, errs.ErrVersionIsInvalid) || attempt >= maxIngestAttempts {
			return nil, err
		}
		h.logger.DebugContext(ctx, "concurrent update while ingesting sample, retrying",
			"tripId", cmd.TripID().String(), "attempt", attempt)
	}

	h.notifier.Notify(ctx, warnings, &summary)
	return distance, nil
}

func (h *ProcessLocationUpdateCommandHandler) distanceFromRoute(
	ctx context.Context,
	cmd ProcessLocationUpdateCommand,
) (*float64, error) {
	geometry, err := h.geometry.GetCurrentLegGeometry(ctx, cmd.TripID())
	if err != nil {
		if errors.Is(err, errs.ErrDataUnavailable) {
			h.logger.DebugContext(ctx, "route geometry unavailable, skipping detection",
				"tripId", cmd.TripID().String(), "error", err)
			return nil, nil
		}
		return nil, err
	}

	d, ok := h.calculator.DistanceToRoute(cmd.Point(), geometry)
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// persist runs one read-modify-write cycle and returns the warnings raised
// by it. Nothing is returned until the transaction is committed.
func (h *ProcessLocationUpdateCommandHandler) persist(
	ctx context.Context,
	cmd ProcessLocationUpdateCommand,
	summary trip.Summary,
	distance *float64,
) ([]offroute.WarningRaised, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.TripPositionRepository().Save(ctx, cmd.Position()); err != nil {
		return nil, err
	}

	event, err := h.evaluate(ctx, uow.OffRouteEventRepository(), cmd, summary, distance)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if event == nil {
		return nil, nil
	}
	return event.PullWarnings(), nil
}

func (h *ProcessLocationUpdateCommandHandler) evaluate(
	ctx context.Context,
	repo ports.OffRouteEventRepository,
	cmd ProcessLocationUpdateCommand,
	summary trip.Summary,
	distance *float64,
) (*offroute.Event, error) {
	event, err := repo.GetActiveByTrip(ctx, cmd.TripID())
	if err != nil {
		return nil, err
	}

	if distance == nil {
		return h.refreshPosition(ctx, repo, cmd, event)
	}

	sample, err := offroute.NewSample(cmd.Point(), *distance, cmd.At())
	if err != nil {
		return nil, err
	}

	if event == nil {
		if !h.policy.IsDeviating(*distance) {
			return nil, nil
		}
		event, err = offroute.NewEvent(kernel.NewUUID(), cmd.TripID(), summary.OrderID, sample, h.policy)
		if err != nil {
			return nil, err
		}
		if err = repo.Add(ctx, event); err != nil {
			return nil, err
		}
		h.logger.InfoContext(ctx, "off-route event opened",
			"eventId", event.ID().String(), "tripId", cmd.TripID().String(), "distanceMeters", *distance)
		return event, nil
	}

	if !cmd.At().After(event.LastLocationUpdateAt()) {
		h.logger.DebugContext(ctx, "stale or replayed sample ignored",
			"eventId", event.ID().String(), "at", cmd.At())
		return nil, nil
	}

	before := event.Status()
	if _, err = event.RecordSample(sample, h.policy); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, event); err != nil {
		return nil, err
	}
	if event.Status() != before {
		h.logger.InfoContext(ctx, "off-route event transitioned",
			"eventId", event.ID().String(), "from", before.String(), "to", event.Status().String())
	}
	return event, nil
}

// refreshPosition keeps the active event's last known position current while
// the distance from the route cannot be computed.
func (h *ProcessLocationUpdateCommandHandler) refreshPosition(
	ctx context.Context,
	repo ports.OffRouteEventRepository,
	cmd ProcessLocationUpdateCommand,
	event *offroute.Event,
) (*offroute.Event, error) {
	if event == nil {
		return nil, nil
	}
	recorded, err := event.RecordPosition(cmd.Point(), cmd.At())
	if err != nil || !recorded {
		return nil, err
	}
	if err = repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
