package commands

import (
	"errors"
	"time"

	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/guard"
)

var ErrCheckContactedWaitingReturnCommandIsNotConstructed = errors.New(
	"CheckContactedWaitingReturnCommand must be created via NewCheckContactedWaitingReturnCommand constructor",
)

// CheckContactedWaitingReturnCommand re-escalates contacted events whose
// grace period expired before Now.
type CheckContactedWaitingReturnCommand struct {
	now   time.Time
	guard guard.ConstructorGuard
}

func NewCheckContactedWaitingReturnCommand(now time.Time) (CheckContactedWaitingReturnCommand, error) {
	if now.IsZero() {
		return CheckContactedWaitingReturnCommand{}, errs.NewValueIsRequiredError("now")
	}
	return CheckContactedWaitingReturnCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c CheckContactedWaitingReturnCommand) Validate() error {
	return c.guard.Validate(ErrCheckContactedWaitingReturnCommandIsNotConstructed)
}

func (c CheckContactedWaitingReturnCommand) Now() time.Time {
	return c.now
}
