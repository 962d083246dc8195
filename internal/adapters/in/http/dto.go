package http

import (
	"time"

	"offroute/internal/core/application/usecases/queries"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
)

type LocationUpdateRequest struct {
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	SpeedKmh   *float64   `json:"speedKmh,omitempty"`
	BearingDeg *float64   `json:"bearingDeg,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

type LocationUpdateResponse struct {
	// DistanceFromRouteMeters is null when no route geometry was available.
	DistanceFromRouteMeters *float64 `json:"distanceFromRouteMeters"`
}

type StaffActionRequest struct {
	StaffID     string `json:"staffId"`
	Notes       string `json:"notes,omitempty"`
	Description string `json:"description,omitempty"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Event struct {
	ID                        string     `json:"id"`
	TripID                    string     `json:"tripId"`
	OrderID                   string     `json:"orderId"`
	Status                    string     `json:"status"`
	LastKnownLocation         Location   `json:"lastKnownLocation"`
	DistanceFromRouteMeters   float64    `json:"distanceFromRouteMeters"`
	LastLocationUpdateAt      time.Time  `json:"lastLocationUpdateAt"`
	OffRouteStartTime         time.Time  `json:"offRouteStartTime"`
	YellowWarningSentAt       *time.Time `json:"yellowWarningSentAt"`
	RedWarningSentAt          *time.Time `json:"redWarningSentAt"`
	GracePeriodExpiresAt      *time.Time `json:"gracePeriodExpiresAt"`
	GracePeriodExtensionCount int        `json:"gracePeriodExtensionCount"`
	CanContactDriver          *bool      `json:"canContactDriver"`
	ContactNotes              string     `json:"contactNotes,omitempty"`
	ContactedAt               *time.Time `json:"contactedAt"`
	ContactedBy               *string    `json:"contactedBy"`
	ResolvedAt                *time.Time `json:"resolvedAt"`
	ResolvedReason            string     `json:"resolvedReason,omitempty"`
	ResolvedBy                *string    `json:"resolvedBy"`
	IssueID                   *string    `json:"issueId"`
	Version                   int64      `json:"version"`

	OrderCode    string `json:"orderCode,omitempty"`
	DriverName   string `json:"driverName,omitempty"`
	DriverPhone  string `json:"driverPhone,omitempty"`
	VehiclePlate string `json:"vehiclePlate,omitempty"`
	VehicleType  string `json:"vehicleType,omitempty"`
}

type Incident struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EventDetail struct {
	Event
	TrackingCode  string     `json:"trackingCode,omitempty"`
	DriverLicense string     `json:"driverLicense,omitempty"`
	SenderName    string     `json:"senderName,omitempty"`
	ReceiverName  string     `json:"receiverName,omitempty"`
	PackageCount  int        `json:"packageCount"`
	Incident      *Incident  `json:"incident"`
	RouteLegs     []RouteLeg `json:"routeLegs"`
}

type RouteLeg struct {
	Order     int        `json:"order"`
	Active    bool       `json:"active"`
	Waypoints []Location `json:"waypoints"`
}

type CreateIssueResponse struct {
	Event    Event    `json:"event"`
	Incident Incident `json:"incident"`
}

func eventFromDomain(e *offroute.Event) Event {
	s := e.State()
	return Event{
		ID:                        s.ID.String(),
		TripID:                    s.TripID.String(),
		OrderID:                   s.OrderID.String(),
		Status:                    s.Status.String(),
		LastKnownLocation:         Location{Lat: s.LastKnownPosition.Lat(), Lng: s.LastKnownPosition.Lng()},
		DistanceFromRouteMeters:   s.DistanceMeters,
		LastLocationUpdateAt:      s.LastLocationUpdateAt,
		OffRouteStartTime:         s.OffRouteStartTime,
		YellowWarningSentAt:       s.YellowWarningSentAt,
		RedWarningSentAt:          s.RedWarningSentAt,
		GracePeriodExpiresAt:      s.GracePeriodExpiresAt,
		GracePeriodExtensionCount: s.GracePeriodExtensionCount,
		CanContactDriver:          s.CanContactDriver,
		ContactNotes:              s.ContactNotes,
		ContactedAt:               s.ContactedAt,
		ContactedBy:               idString(s.ContactedBy),
		ResolvedAt:                s.ResolvedAt,
		ResolvedReason:            s.ResolvedReason,
		ResolvedBy:                idString(s.ResolvedBy),
		IssueID:                   idString(s.IssueID),
		Version:                   s.Version,
	}
}

func eventFromView(v queries.EventView) Event {
	return Event{
		ID:                        v.ID.String(),
		TripID:                    v.TripID.String(),
		OrderID:                   v.OrderID.String(),
		Status:                    v.Status,
		LastKnownLocation:         Location{Lat: v.LastKnownLocation.Lat(), Lng: v.LastKnownLocation.Lng()},
		DistanceFromRouteMeters:   v.DistanceFromRouteMeters,
		LastLocationUpdateAt:      v.LastLocationUpdateAt,
		OffRouteStartTime:         v.OffRouteStartTime,
		YellowWarningSentAt:       v.YellowWarningSentAt,
		RedWarningSentAt:          v.RedWarningSentAt,
		GracePeriodExpiresAt:      v.GracePeriodExpiresAt,
		GracePeriodExtensionCount: v.GracePeriodExtensionCount,
		CanContactDriver:          v.CanContactDriver,
		ContactNotes:              v.ContactNotes,
		ContactedAt:               v.ContactedAt,
		ContactedBy:               idString(v.ContactedBy),
		ResolvedAt:                v.ResolvedAt,
		ResolvedReason:            v.ResolvedReason,
		ResolvedBy:                idString(v.ResolvedBy),
		IssueID:                   idString(v.IssueID),
		Version:                   v.Version,
		OrderCode:                 v.OrderCode,
		DriverName:                v.DriverName,
		DriverPhone:               v.DriverPhone,
		VehiclePlate:              v.VehiclePlate,
		VehicleType:               v.VehicleType,
	}
}

func eventsFromViews(views []queries.EventView) []Event {
	response := make([]Event, len(views))
	for i, v := range views {
		response[i] = eventFromView(v)
	}
	return response
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func routeLegsFromViews(views []queries.RouteLegView) []RouteLeg {
	legs := make([]RouteLeg, 0, len(views))
	for _, v := range views {
		waypoints := make([]Location, 0, len(v.Waypoints))
		for _, p := range v.Waypoints {
			waypoints = append(waypoints, Location{Lat: p.Lat(), Lng: p.Lng()})
		}
		legs = append(legs, RouteLeg{Order: v.Order, Active: v.Active, Waypoints: waypoints})
	}
	return legs
}
