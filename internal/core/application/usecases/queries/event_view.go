// Package queries contains read operations over off-route events.
// Handlers read with raw SQL and return flat read models; they never load
// aggregates.
package queries

import (
	"database/sql"
	"time"

	"offroute/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventView is the read model of an off-route event joined with the trip
// summary owned by the trip context. Summary fields are empty when the trip
// context has no row for the trip.
type EventView struct {
	ID                        kernel.UUID
	TripID                    kernel.UUID
	OrderID                   kernel.UUID
	Status                    string
	LastKnownLocation         kernel.GeoPoint
	DistanceFromRouteMeters   float64
	LastLocationUpdateAt      time.Time
	OffRouteStartTime         time.Time
	YellowWarningSentAt       *time.Time
	RedWarningSentAt          *time.Time
	GracePeriodExpiresAt      *time.Time
	GracePeriodExtensionCount int
	CanContactDriver          *bool
	ContactNotes              string
	ContactedAt               *time.Time
	ContactedBy               *kernel.UUID
	ResolvedAt                *time.Time
	ResolvedReason            string
	ResolvedBy                *kernel.UUID
	IssueID                   *kernel.UUID
	Version                   int64

	OrderCode    string
	DriverName   string
	DriverPhone  string
	VehiclePlate string
	VehicleType  string
}

const eventViewSelect = `
	SELECT
		e.id,
		e.trip_id,
		e.order_id,
		e.warning_status,
		e.last_known_lat,
		e.last_known_lng,
		e.distance_from_route_meters,
		e.last_location_update_at,
		e.off_route_start_time,
		e.yellow_warning_sent_at,
		e.red_warning_sent_at,
		e.grace_period_expires_at,
		e.grace_period_extension_count,
		e.can_contact_driver,
		e.contact_notes,
		e.contacted_at,
		e.contacted_by,
		e.resolved_at,
		e.resolved_reason,
		e.resolved_by,
		e.issue_id,
		e.version,
		COALESCE(s.order_code, ''),
		COALESCE(s.driver_name, ''),
		COALESCE(s.driver_phone, ''),
		COALESCE(s.vehicle_plate, ''),
		COALESCE(s.vehicle_type, '')
	FROM off_route_events e
	LEFT JOIN trip_summaries s ON s.trip_id = e.trip_id`

func scanEventViews(rows *sql.Rows) ([]EventView, error) {
	views := make([]EventView, 0)
	for rows.Next() {
		view, err := scanEventView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

func scanEventView(rows *sql.Rows) (EventView, error) {
	var (
		v                                EventView
		id, tripID, orderID              uuid.UUID
		contactedBy, resolvedBy, issueID *uuid.UUID
		lat, lng                         float64
	)

	err := rows.Scan(
		&id,
		&tripID,
		&orderID,
		&v.Status,
		&lat,
		&lng,
		&v.DistanceFromRouteMeters,
		&v.LastLocationUpdateAt,
		&v.OffRouteStartTime,
		&v.YellowWarningSentAt,
		&v.RedWarningSentAt,
		&v.GracePeriodExpiresAt,
		&v.GracePeriodExtensionCount,
		&v.CanContactDriver,
		&v.ContactNotes,
		&v.ContactedAt,
		&contactedBy,
		&v.ResolvedAt,
		&v.ResolvedReason,
		&resolvedBy,
		&issueID,
		&v.Version,
		&v.OrderCode,
		&v.DriverName,
		&v.DriverPhone,
		&v.VehiclePlate,
		&v.VehicleType,
	)
	if err != nil {
		return EventView{}, err
	}

	if v.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return EventView{}, err
	}
	if v.TripID, err = kernel.UUIDFromGoogle(tripID); err != nil {
		return EventView{}, err
	}
	if v.OrderID, err = kernel.UUIDFromGoogle(orderID); err != nil {
		return EventView{}, err
	}
	if v.LastKnownLocation, err = kernel.NewGeoPoint(lat, lng); err != nil {
		return EventView{}, err
	}
	if v.ContactedBy, err = optionalUUID(contactedBy); err != nil {
		return EventView{}, err
	}
	if v.ResolvedBy, err = optionalUUID(resolvedBy); err != nil {
		return EventView{}, err
	}
	if v.IssueID, err = optionalUUID(issueID); err != nil {
		return EventView{}, err
	}

	v.LastLocationUpdateAt = v.LastLocationUpdateAt.UTC()
	v.OffRouteStartTime = v.OffRouteStartTime.UTC()
	for _, t := range []*time.Time{v.YellowWarningSentAt, v.RedWarningSentAt, v.GracePeriodExpiresAt, v.ContactedAt, v.ResolvedAt} {
		if t != nil {
			*t = t.UTC()
		}
	}
	return v, nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	u, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
