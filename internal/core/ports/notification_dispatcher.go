package ports

import (
	"context"
	"time"
)

// WarningPayload is what staff channels receive when an event enters a
// warning status.
type WarningPayload struct {
	Type                    string          `json:"type"`
	Severity                string          `json:"severity"`
	OffRouteEventID         string          `json:"offRouteEventId"`
	TripID                  string          `json:"tripId"`
	OrderID                 string          `json:"orderId"`
	Status                  string          `json:"status"`
	OffRouteDurationMinutes int64           `json:"offRouteDurationMinutes"`
	LastKnownLocation       PayloadLocation `json:"lastKnownLocation"`
	DriverName              string          `json:"driverName"`
	DriverPhone             string          `json:"driverPhone"`
	VehiclePlate            string          `json:"vehiclePlate"`
	VehicleType             string          `json:"vehicleType"`
	OrderCode               string          `json:"orderCode"`
	PackageCount            int             `json:"packageCount"`
	SenderName              string          `json:"senderName"`
	ReceiverName            string          `json:"receiverName"`
	WarningTime             time.Time       `json:"warningTime"`
}

type PayloadLocation struct {
	Lat                     float64 `json:"lat"`
	Lng                     float64 `json:"lng"`
	DistanceFromRouteMeters float64 `json:"distanceFromRouteMeters"`
}

// NotificationDispatcher delivers warnings to staff. Delivery is best effort:
// callers log failures and never roll back the transition that caused them.
type NotificationDispatcher interface {
	SendWarning(ctx context.Context, payload WarningPayload) error
}
