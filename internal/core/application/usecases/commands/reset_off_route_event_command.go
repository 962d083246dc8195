package commands

import (
	"errors"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/guard"
)

var ErrResetOffRouteEventCommandIsNotConstructed = errors.New(
	"ResetOffRouteEventCommand must be created via NewResetOffRouteEventCommand constructor",
)

type ResetOffRouteEventCommand struct {
	tripID kernel.UUID
	at     time.Time
	guard  guard.ConstructorGuard
}

func NewResetOffRouteEventCommand(tripID kernel.UUID, at time.Time) (ResetOffRouteEventCommand, error) {
	var errList []error
	if err := tripID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("tripID", err))
	}
	if at.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("at"))
	}
	if err := errors.Join(errList...); err != nil {
		return ResetOffRouteEventCommand{}, err
	}

	return ResetOffRouteEventCommand{tripID: tripID, at: at, guard: guard.NewConstructorGuard()}, nil
}

func (c ResetOffRouteEventCommand) Validate() error {
	return c.guard.Validate(ErrResetOffRouteEventCommandIsNotConstructed)
}

func (c ResetOffRouteEventCommand) TripID() kernel.UUID {
	return c.tripID
}

func (c ResetOffRouteEventCommand) At() time.Time {
	return c.at
}
