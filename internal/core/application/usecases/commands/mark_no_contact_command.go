package commands

import (
	"errors"
	"strings"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/guard"
)

var ErrMarkNoContactCommandIsNotConstructed = errors.New(
	"MarkNoContactCommand must be created via NewMarkNoContactCommand constructor",
)

type MarkNoContactCommand struct {
	staffAction
	notes string
	guard guard.ConstructorGuard
}

func NewMarkNoContactCommand(eventID, staffID kernel.UUID, notes string, at time.Time) (MarkNoContactCommand, error) {
	action, err := newStaffAction(eventID, staffID, at)
	if err != nil {
		return MarkNoContactCommand{}, err
	}
	notes = strings.TrimSpace(notes)
	if err = validateNotes("notes", notes); err != nil {
		return MarkNoContactCommand{}, err
	}

	return MarkNoContactCommand{staffAction: action, notes: notes, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkNoContactCommand) Validate() error {
	return c.guard.Validate(ErrMarkNoContactCommandIsNotConstructed)
}

func (c MarkNoContactCommand) Notes() string {
	return c.notes
}
