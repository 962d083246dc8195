package commands

import (
	"errors"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/guard"
)

var ErrConfirmContactCommandIsNotConstructed = errors.New(
	"ConfirmContactCommand must be created via NewConfirmContactCommand constructor",
)

type ConfirmContactCommand struct {
	staffAction
	guard guard.ConstructorGuard
}

func NewConfirmContactCommand(eventID, staffID kernel.UUID, at time.Time) (ConfirmContactCommand, error) {
	action, err := newStaffAction(eventID, staffID, at)
	if err != nil {
		return ConfirmContactCommand{}, err
	}
	return ConfirmContactCommand{staffAction: action, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmContactCommand) Validate() error {
	return c.guard.Validate(ErrConfirmContactCommandIsNotConstructed)
}
