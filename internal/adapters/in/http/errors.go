package http

import (
	"errors"
	"net/http"

	"offroute/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrLimitExceeded),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal failures get a generic message
// and are handed to echo's logger.
func fail(c echo.Context, err error, message string) error {
	code := statusOf(err)
	switch code {
	case http.StatusInternalServerError:
		c.Logger().Error(err)
	case http.StatusConflict:
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			message = "Event changed concurrently, please refresh"
		} else {
			message = err.Error()
		}
	default:
		message = err.Error()
	}
	return c.JSON(code, Error{Code: code, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
