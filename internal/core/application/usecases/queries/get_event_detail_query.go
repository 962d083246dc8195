package queries

import (
	"errors"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/guard"
)

var ErrGetEventDetailQueryIsNotConstructed = errors.New(
	"GetEventDetailQuery must be created via NewGetEventDetailQuery constructor",
)

// GetEventDetailQuery reads one event with everything staff need to act on
// it: the trip's order, driver and vehicle context and the incident, if one
// was opened.
type GetEventDetailQuery struct {
	eventID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetEventDetailQuery(eventID kernel.UUID) (GetEventDetailQuery, error) {
	if eventID.IsZero() {
		return GetEventDetailQuery{}, errs.NewValueIsRequiredError("eventID")
	}
	return GetEventDetailQuery{eventID: eventID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEventDetailQuery) EventID() kernel.UUID { return q.eventID }

func (q GetEventDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetEventDetailQueryIsNotConstructed)
}

// GetEventDetailQueryResponse extends EventView with the rest of the trip
// summary and the planned route legs.
type GetEventDetailQueryResponse struct {
	Event EventView

	TrackingCode  string
	DriverLicense string
	SenderName    string
	ReceiverName  string
	PackageCount  int

	Incident  *IncidentView
	RouteLegs []RouteLegView
}

// RouteLegView is one planned leg of the trip in travel order.
type RouteLegView struct {
	Order     int
	Active    bool
	Waypoints []kernel.GeoPoint
}

type IncidentView struct {
	ID          kernel.UUID
	Description string
	Status      string
	CreatedAt   time.Time
}
