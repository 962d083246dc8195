package queries

import (
	"errors"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/guard"
)

var ErrGetEventsByOrderQueryIsNotConstructed = errors.New(
	"GetEventsByOrderQuery must be created via NewGetEventsByOrderQuery constructor",
)

// GetEventsByOrderQuery lists the full off-route history of one order.
type GetEventsByOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetEventsByOrderQuery(orderID kernel.UUID) (GetEventsByOrderQuery, error) {
	if orderID.IsZero() {
		return GetEventsByOrderQuery{}, errs.NewValueIsRequiredError("orderID")
	}
	return GetEventsByOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEventsByOrderQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetEventsByOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetEventsByOrderQueryIsNotConstructed)
}
