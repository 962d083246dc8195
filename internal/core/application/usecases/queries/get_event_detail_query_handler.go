package queries

import (
	"context"
	"fmt"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/routegeojson"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type summaryExtra struct {
	TrackingCode  string
	DriverLicense string
	SenderName    string
	ReceiverName  string
	PackageCount  int
}

type GetEventDetailQueryHandler struct {
	db *gorm.DB
}

func NewGetEventDetailQueryHandler(db *gorm.DB) GetEventDetailQueryHandler {
	return GetEventDetailQueryHandler{db: db}
}

// Handle fails with errs.ObjectNotFoundError when the event does not exist.
func (h GetEventDetailQueryHandler) Handle(
	ctx context.Context,
	query GetEventDetailQuery,
) (GetEventDetailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEventDetailQueryResponse{}, err
	}
	db := h.db.WithContext(ctx)

	rows, err := db.Raw(eventViewSelect+`
		WHERE e.id = ?
	`, query.EventID().Google()).Rows()
	if err != nil {
		return GetEventDetailQueryResponse{}, fmt.Errorf("query event %s: %w", query.EventID(), err)
	}
	views, err := scanEventViews(rows)
	_ = rows.Close()
	if err != nil {
		return GetEventDetailQueryResponse{}, err
	}
	if len(views) == 0 {
		return GetEventDetailQueryResponse{}, errs.NewObjectNotFoundError("eventID", query.EventID())
	}
	response := GetEventDetailQueryResponse{Event: views[0]}

	var extra summaryExtra
	err = db.Raw(`
		SELECT tracking_code, driver_license, sender_name, receiver_name, package_count
		FROM trip_summaries
		WHERE trip_id = ?
	`, response.Event.TripID.Google()).Scan(&extra).Error
	if err != nil {
		return GetEventDetailQueryResponse{}, fmt.Errorf("query trip summary %s: %w", response.Event.TripID, err)
	}
	response.TrackingCode = extra.TrackingCode
	response.DriverLicense = extra.DriverLicense
	response.SenderName = extra.SenderName
	response.ReceiverName = extra.ReceiverName
	response.PackageCount = extra.PackageCount

	if response.Incident, err = h.incident(ctx, query.EventID()); err != nil {
		return GetEventDetailQueryResponse{}, err
	}
	if response.RouteLegs, err = h.routeLegs(ctx, response.Event.TripID); err != nil {
		return GetEventDetailQueryResponse{}, err
	}
	return response, nil
}

// routeLegs skips legs whose geometry cannot be decoded.
func (h GetEventDetailQueryHandler) routeLegs(ctx context.Context, tripID kernel.UUID) ([]RouteLegView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT leg_order, active, geometry
		FROM trip_route_legs
		WHERE trip_id = ?
		ORDER BY leg_order ASC
	`, tripID.Google()).Rows()
	if err != nil {
		return nil, fmt.Errorf("query route legs of trip %s: %w", tripID, err)
	}
	defer rows.Close()

	legs := make([]RouteLegView, 0)
	for rows.Next() {
		var (
			leg      RouteLegView
			geometry string
		)
		if err = rows.Scan(&leg.Order, &leg.Active, &geometry); err != nil {
			return nil, err
		}
		decoded, err := routegeojson.Unmarshal([]byte(geometry))
		if err != nil {
			continue
		}
		leg.Waypoints = decoded.Waypoints()
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

func (h GetEventDetailQueryHandler) incident(ctx context.Context, eventID kernel.UUID) (*IncidentView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, description, status, created_at
		FROM off_route_incidents
		WHERE event_id = ?
	`, eventID.Google()).Rows()
	if err != nil {
		return nil, fmt.Errorf("query incident of event %s: %w", eventID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var (
		view IncidentView
		id   uuid.UUID
	)
	if err = rows.Scan(&id, &view.Description, &view.Status, &view.CreatedAt); err != nil {
		return nil, err
	}
	if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return nil, err
	}
	view.CreatedAt = view.CreatedAt.UTC()
	return &view, nil
}
