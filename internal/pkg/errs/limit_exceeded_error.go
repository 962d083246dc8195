package errs

import (
	"errors"
	"fmt"
)

var ErrLimitExceeded = errors.New("limit exceeded")

type LimitExceededError struct {
	ParamName string
	Limit     any
}

func NewLimitExceededError(paramName string, limit any) *LimitExceededError {
	return &LimitExceededError{
		ParamName: paramName,
		Limit:     limit,
	}
}

func (e *LimitExceededError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s, limit is %v", ErrLimitExceeded, e.ParamName, e.Limit))
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}
