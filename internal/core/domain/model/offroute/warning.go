package offroute

import (
	"time"

	"offroute/internal/core/domain/model/kernel"
)

type Severity string

const (
	SeverityYellow Severity = "YELLOW"
	SeverityRed    Severity = "RED"
)

type WarningKind string

const (
	KindOffRouteWarning WarningKind = "OFF_ROUTE_WARNING"
	KindEscalation      WarningKind = "ESCALATION"
)

// WarningRaised is recorded on the aggregate whenever it enters a warning
// status. It is dispatched only after the change is committed.
type WarningRaised struct {
	EventID          kernel.UUID
	TripID           kernel.UUID
	OrderID          kernel.UUID
	Kind             WarningKind
	Severity         Severity
	Status           Status
	Position         kernel.GeoPoint
	DistanceMeters   float64
	OffRouteDuration time.Duration
	RaisedAt         time.Time
}
