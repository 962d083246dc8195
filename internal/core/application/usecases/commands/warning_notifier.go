package commands

import (
	"context"
	"log/slog"

	"offroute/internal/core/domain/model/offroute"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/core/ports"
)

// WarningNotifier turns raised warnings into staff payloads. Failures are
// logged and swallowed: the committed warning status is the source of truth.
type WarningNotifier struct {
	directory  ports.TripDirectory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

func NewWarningNotifier(
	directory ports.TripDirectory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) *WarningNotifier {
	return &WarningNotifier{
		directory:  directory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "WarningNotifier"),
	}
}

// Notify sends every warning. summary may be nil, in which case it is looked
// up; a failed lookup still sends the warning with placeholder fields.
func (n *WarningNotifier) Notify(ctx context.Context, warnings []offroute.WarningRaised, summary *trip.Summary) {
	for _, w := range warnings {
		s := summary
		if s == nil {
			found, err := n.directory.GetTripSummary(ctx, w.TripID)
			if err != nil {
				n.logger.WarnContext(ctx, "trip summary unavailable for warning",
					"tripId", w.TripID.String(), "error", err)
			} else {
				s = &found
			}
		}

		payload := BuildWarningPayload(w, s)
		if err := n.dispatcher.SendWarning(ctx, payload); err != nil {
			n.logger.ErrorContext(ctx, "failed to send off-route warning",
				"eventId", payload.OffRouteEventID, "severity", payload.Severity, "error", err)
			continue
		}
		n.logger.InfoContext(ctx, "off-route warning sent",
			"eventId", payload.OffRouteEventID, "severity", payload.Severity, "orderCode", payload.OrderCode)
	}
}

// BuildWarningPayload maps a warning and its trip context to the wire payload.
func BuildWarningPayload(w offroute.WarningRaised, s *trip.Summary) ports.WarningPayload {
	if s == nil {
		s = &trip.Summary{}
	}
	return ports.WarningPayload{
		Type:                    string(w.Kind),
		Severity:                string(w.Severity),
		OffRouteEventID:         w.EventID.String(),
		TripID:                  w.TripID.String(),
		OrderID:                 w.OrderID.String(),
		Status:                  w.Status.String(),
		OffRouteDurationMinutes: int64(w.OffRouteDuration.Minutes()),
		LastKnownLocation: ports.PayloadLocation{
			Lat:                     w.Position.Lat(),
			Lng:                     w.Position.Lng(),
			DistanceFromRouteMeters: w.DistanceMeters,
		},
		DriverName:   trip.OrDefault(s.DriverName),
		DriverPhone:  trip.OrDefault(s.DriverPhone),
		VehiclePlate: trip.OrDefault(s.VehiclePlate),
		VehicleType:  trip.OrDefault(s.VehicleType),
		OrderCode:    trip.OrDefault(s.OrderCode),
		PackageCount: s.PackageCount,
		SenderName:   trip.OrDefault(s.SenderName),
		ReceiverName: trip.OrDefault(s.ReceiverName),
		WarningTime:  w.RaisedAt,
	}
}
