package http

import (
	"net/http"

	"offroute/internal/core/application/usecases/commands"
	"offroute/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type staffAction struct {
	eventID kernel.UUID
	staffID kernel.UUID
	StaffActionRequest
}

// bindStaffAction reads the event id from the path and the acting staff
// member from the body. A non-nil *Error is the 400 to answer with.
func bindStaffAction(ctx echo.Context) (staffAction, *Error) {
	var a staffAction
	invalid := func(message string) (staffAction, *Error) {
		return staffAction{}, &Error{Code: http.StatusBadRequest, Message: message}
	}

	eventID, err := kernel.UUIDFromString(ctx.Param("eventId"))
	if err != nil {
		return invalid("Invalid event id")
	}
	if err = ctx.Bind(&a.StaffActionRequest); err != nil {
		return invalid("Invalid request body")
	}
	staffID, err := kernel.UUIDFromString(a.StaffID)
	if err != nil {
		return invalid("Invalid staff id")
	}

	a.eventID, a.staffID = eventID, staffID
	return a, nil
}

// ConfirmSafe handles POST /api/v1/off-route-events/:eventId/confirm-safe.
func (s *Server) ConfirmSafe(ctx echo.Context) error {
	a, bad := bindStaffAction(ctx)
	if bad != nil {
		return ctx.JSON(bad.Code, bad)
	}

	cmd, err := commands.NewConfirmSafeCommand(a.eventID, a.staffID, a.Notes, s.stamp())
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	event, err := s.h.ConfirmSafe.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Failed to confirm driver is safe")
	}
	return ctx.JSON(http.StatusOK, eventFromDomain(event))
}

// MarkNoContact handles POST /api/v1/off-route-events/:eventId/mark-no-contact.
func (s *Server) MarkNoContact(ctx echo.Context) error {
	a, bad := bindStaffAction(ctx)
	if bad != nil {
		return ctx.JSON(bad.Code, bad)
	}

	cmd, err := commands.NewMarkNoContactCommand(a.eventID, a.staffID, a.Notes, s.stamp())
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	event, err := s.h.MarkNoContact.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Failed to mark no contact")
	}
	return ctx.JSON(http.StatusOK, eventFromDomain(event))
}

// ConfirmContact handles POST /api/v1/off-route-events/:eventId/confirm-contact.
func (s *Server) ConfirmContact(ctx echo.Context) error {
	a, bad := bindStaffAction(ctx)
	if bad != nil {
		return ctx.JSON(bad.Code, bad)
	}

	cmd, err := commands.NewConfirmContactCommand(a.eventID, a.staffID, s.stamp())
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	event, err := s.h.ConfirmContact.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Failed to confirm contact")
	}
	return ctx.JSON(http.StatusOK, eventFromDomain(event))
}

// ExtendGracePeriod handles POST /api/v1/off-route-events/:eventId/extend-grace-period.
func (s *Server) ExtendGracePeriod(ctx echo.Context) error {
	a, bad := bindStaffAction(ctx)
	if bad != nil {
		return ctx.JSON(bad.Code, bad)
	}

	cmd, err := commands.NewExtendGracePeriodCommand(a.eventID, a.staffID, s.stamp())
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	event, err := s.h.ExtendGracePeriod.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Failed to extend grace period")
	}
	return ctx.JSON(http.StatusOK, eventFromDomain(event))
}

// CreateIssue handles POST /api/v1/off-route-events/:eventId/create-issue.
func (s *Server) CreateIssue(ctx echo.Context) error {
	a, bad := bindStaffAction(ctx)
	if bad != nil {
		return ctx.JSON(bad.Code, bad)
	}

	cmd, err := commands.NewCreateIssueFromEventCommand(a.eventID, a.staffID, a.Description, s.stamp())
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	event, created, err := s.h.CreateIssue.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Failed to create issue")
	}
	return ctx.JSON(http.StatusCreated, CreateIssueResponse{
		Event: eventFromDomain(event),
		Incident: Incident{
			ID:          created.ID().String(),
			Description: created.Description(),
			Status:      string(created.Status()),
			CreatedAt:   created.ReportedAt(),
		},
	})
}

// ResetOffRoute handles POST /api/v1/trips/:tripId/off-route/reset. It
// answers 204 when the trip had no active event.
func (s *Server) ResetOffRoute(ctx echo.Context) error {
	tripID, err := kernel.UUIDFromString(ctx.Param("tripId"))
	if err != nil {
		return badRequest(ctx, "Invalid trip id")
	}

	cmd, err := commands.NewResetOffRouteEventCommand(tripID, s.stamp())
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	event, err := s.h.Reset.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Failed to reset off-route event")
	}
	if event == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	return ctx.JSON(http.StatusOK, eventFromDomain(event))
}
