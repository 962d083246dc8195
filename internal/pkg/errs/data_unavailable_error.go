package errs

import (
	"errors"
	"fmt"
)

var ErrDataUnavailable = errors.New("data unavailable")

// DataUnavailableError reports that an upstream read model has nothing for
// the requested key yet. Callers usually degrade instead of failing.
type DataUnavailableError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewDataUnavailableError(paramName string, id any) *DataUnavailableError {
	return &DataUnavailableError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewDataUnavailableErrorWithCause(paramName string, id any, cause error) *DataUnavailableError {
	return &DataUnavailableError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *DataUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s %v (cause: %v)", ErrDataUnavailable, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s %v", ErrDataUnavailable, e.ParamName, e.ID))
}

func (e *DataUnavailableError) Unwrap() error {
	return ErrDataUnavailable
}
