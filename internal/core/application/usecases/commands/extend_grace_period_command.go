package commands

import (
	"errors"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/guard"
)

var ErrExtendGracePeriodCommandIsNotConstructed = errors.New(
	"ExtendGracePeriodCommand must be created via NewExtendGracePeriodCommand constructor",
)

type ExtendGracePeriodCommand struct {
	staffAction
	guard guard.ConstructorGuard
}

func NewExtendGracePeriodCommand(eventID, staffID kernel.UUID, at time.Time) (ExtendGracePeriodCommand, error) {
	action, err := newStaffAction(eventID, staffID, at)
	if err != nil {
		return ExtendGracePeriodCommand{}, err
	}
	return ExtendGracePeriodCommand{staffAction: action, guard: guard.NewConstructorGuard()}, nil
}

func (c ExtendGracePeriodCommand) Validate() error {
	return c.guard.Validate(ErrExtendGracePeriodCommandIsNotConstructed)
}
