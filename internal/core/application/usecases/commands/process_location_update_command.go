package commands

import (
	"errors"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/pkg/guard"
)

var ErrProcessLocationUpdateCommandIsNotConstructed = errors.New(
	"ProcessLocationUpdateCommand must be created via NewProcessLocationUpdateCommand constructor",
)

// ProcessLocationUpdateCommand carries one position sample of a trip.
// Speed (km/h) and bearing (degrees) are optional.
type ProcessLocationUpdateCommand struct {
	position trip.Position
	guard    guard.ConstructorGuard
}

func NewProcessLocationUpdateCommand(
	tripID kernel.UUID,
	lat, lng float64,
	speedKmh, bearingDeg *float64,
	at time.Time,
) (ProcessLocationUpdateCommand, error) {
	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return ProcessLocationUpdateCommand{}, err
	}

	position, err := trip.NewPosition(tripID, point, speedKmh, bearingDeg, at)
	if err != nil {
		return ProcessLocationUpdateCommand{}, err
	}

	return ProcessLocationUpdateCommand{
		position: position,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessLocationUpdateCommand) Validate() error {
	return c.guard.Validate(ErrProcessLocationUpdateCommandIsNotConstructed)
}

func (c ProcessLocationUpdateCommand) TripID() kernel.UUID     { return c.position.TripID() }
func (c ProcessLocationUpdateCommand) Point() kernel.GeoPoint  { return c.position.Point() }
func (c ProcessLocationUpdateCommand) At() time.Time           { return c.position.ReportedAt() }
func (c ProcessLocationUpdateCommand) Position() trip.Position { return c.position }
