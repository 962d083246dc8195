package queries

import (
	"errors"

	"offroute/internal/pkg/guard"
)

var ErrGetActiveEventsQueryIsNotConstructed = errors.New(
	"GetActiveEventsQuery must be created via NewGetActiveEventsQuery constructor",
)

// GetActiveEventsQuery lists every event still in a non-terminal status.
type GetActiveEventsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveEventsQuery() GetActiveEventsQuery {
	return GetActiveEventsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveEventsQueryIsNotConstructed)
}
