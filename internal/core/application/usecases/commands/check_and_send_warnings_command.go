package commands

import (
	"errors"
	"time"

	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/guard"
)

var ErrCheckAndSendWarningsCommandIsNotConstructed = errors.New(
	"CheckAndSendWarningsCommand must be created via NewCheckAndSendWarningsCommand constructor",
)

// CheckAndSendWarningsCommand escalates yellow warnings whose deviation has
// been sustained past the red-after duration as of Now.
type CheckAndSendWarningsCommand struct {
	now   time.Time
	guard guard.ConstructorGuard
}

func NewCheckAndSendWarningsCommand(now time.Time) (CheckAndSendWarningsCommand, error) {
	if now.IsZero() {
		return CheckAndSendWarningsCommand{}, errs.NewValueIsRequiredError("now")
	}
	return CheckAndSendWarningsCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c CheckAndSendWarningsCommand) Validate() error {
	return c.guard.Validate(ErrCheckAndSendWarningsCommandIsNotConstructed)
}

func (c CheckAndSendWarningsCommand) Now() time.Time {
	return c.now
}
