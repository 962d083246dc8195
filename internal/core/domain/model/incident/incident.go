// Package incident models the issue opened by staff from an off-route event.
package incident

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
)

var ErrIncidentIsNotConstructed = errors.New("Incident must be created via NewIncident or RestoreIncident")

const maxDescriptionLength = 2000

type Status string

const (
	StatusOpen Status = "OPEN"
)

// Category is fixed for every incident raised from an off-route event.
const Category = "OFF_ROUTE_RUNAWAY"

type Incident struct {
	id          kernel.UUID
	eventID     kernel.UUID
	tripID      kernel.UUID
	description string
	reportedBy  kernel.UUID
	location    kernel.GeoPoint
	status      Status
	reportedAt  time.Time

	isConstructed bool
}

func NewIncident(
	id, eventID, tripID kernel.UUID,
	description string,
	reportedBy kernel.UUID,
	location kernel.GeoPoint,
	reportedAt time.Time,
) (*Incident, error) {
	i := &Incident{status: StatusOpen, reportedAt: reportedAt, isConstructed: true}

	if err := errors.Join(
		id.Validate(),
		eventID.Validate(),
		tripID.Validate(),
		reportedBy.Validate(),
		location.Validate(),
		i.setDescription(description),
	); err != nil {
		return nil, err
	}

	i.id, i.eventID, i.tripID, i.reportedBy, i.location = id, eventID, tripID, reportedBy, location
	return i, nil
}

// RestoreIncident rebuilds an incident read from storage.
func RestoreIncident(
	id, eventID, tripID kernel.UUID,
	description string,
	reportedBy kernel.UUID,
	location kernel.GeoPoint,
	status Status,
	reportedAt time.Time,
) (*Incident, error) {
	i, err := NewIncident(id, eventID, tripID, description, reportedBy, location, reportedAt)
	if err != nil {
		return nil, err
	}
	i.status = status
	return i, nil
}

func (i *Incident) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIncidentIsNotConstructed
	}
	return nil
}

func (i *Incident) ID() kernel.UUID           { return i.id }
func (i *Incident) EventID() kernel.UUID      { return i.eventID }
func (i *Incident) TripID() kernel.UUID       { return i.tripID }
func (i *Incident) Description() string       { return i.description }
func (i *Incident) ReportedBy() kernel.UUID   { return i.reportedBy }
func (i *Incident) Location() kernel.GeoPoint { return i.location }
func (i *Incident) Status() Status            { return i.status }
func (i *Incident) ReportedAt() time.Time     { return i.reportedAt }

func (i *Incident) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	if len(description) > maxDescriptionLength {
		return errs.NewValueIsOutOfRangeError("description length", len(description), 1, maxDescriptionLength)
	}
	i.description = description
	return nil
}

// DefaultDescription is used when staff leave the description empty.
func DefaultDescription(orderCode, vehiclePlate string, distanceMeters float64, duration time.Duration, contacted bool) string {
	contact := "driver was not contacted"
	if contacted {
		contact = "driver was contacted"
	}
	return fmt.Sprintf(
		"Driver left the planned route. Order: %s, Vehicle: %s, Distance from route: %.2f meters, Off route for %d minutes, %s",
		orderCode, vehiclePlate, distanceMeters, int(duration.Minutes()), contact,
	)
}
