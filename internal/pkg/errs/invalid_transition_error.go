package errs

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError is returned when a trigger is not allowed from the
// current status of a state machine.
type InvalidTransitionError struct {
	From    string
	Trigger string
}

func NewInvalidTransitionError(from, trigger string) *InvalidTransitionError {
	return &InvalidTransitionError{
		From:    from,
		Trigger: trigger,
	}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidTransition, e.Trigger, e.From))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
