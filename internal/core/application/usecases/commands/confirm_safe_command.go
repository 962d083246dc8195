package commands

import (
	"errors"
	"strings"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/guard"
)

var ErrConfirmSafeCommandIsNotConstructed = errors.New(
	"ConfirmSafeCommand must be created via NewConfirmSafeCommand constructor",
)

type ConfirmSafeCommand struct {
	staffAction
	notes string
	guard guard.ConstructorGuard
}

func NewConfirmSafeCommand(eventID, staffID kernel.UUID, notes string, at time.Time) (ConfirmSafeCommand, error) {
	action, err := newStaffAction(eventID, staffID, at)
	if err != nil {
		return ConfirmSafeCommand{}, err
	}
	notes = strings.TrimSpace(notes)
	if err = validateNotes("notes", notes); err != nil {
		return ConfirmSafeCommand{}, err
	}

	return ConfirmSafeCommand{staffAction: action, notes: notes, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmSafeCommand) Validate() error {
	return c.guard.Validate(ErrConfirmSafeCommandIsNotConstructed)
}

func (c ConfirmSafeCommand) Notes() string {
	return c.notes
}
