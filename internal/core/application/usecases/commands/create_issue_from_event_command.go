package commands

import (
	"errors"
	"strings"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/guard"
)

var ErrCreateIssueFromEventCommandIsNotConstructed = errors.New(
	"CreateIssueFromEventCommand must be created via NewCreateIssueFromEventCommand constructor",
)

// CreateIssueFromEventCommand opens an incident for an off-route event. An
// empty description is replaced by one built from the trip context.
type CreateIssueFromEventCommand struct {
	staffAction
	description string
	guard       guard.ConstructorGuard
}

func NewCreateIssueFromEventCommand(
	eventID, staffID kernel.UUID,
	description string,
	at time.Time,
) (CreateIssueFromEventCommand, error) {
	action, err := newStaffAction(eventID, staffID, at)
	if err != nil {
		return CreateIssueFromEventCommand{}, err
	}

	return CreateIssueFromEventCommand{
		staffAction: action,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateIssueFromEventCommand) Validate() error {
	return c.guard.Validate(ErrCreateIssueFromEventCommandIsNotConstructed)
}

func (c CreateIssueFromEventCommand) Description() string {
	return c.description
}
