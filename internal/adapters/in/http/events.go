package http

import (
	"net/http"

	"offroute/internal/core/application/usecases/queries"
	"offroute/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetActiveEvents handles GET /api/v1/off-route-events/active.
func (s *Server) GetActiveEvents(ctx echo.Context) error {
	views, err := s.h.ActiveEvents.Handle(ctx.Request().Context(), queries.NewGetActiveEventsQuery())
	if err != nil {
		return fail(ctx, err, "Failed to retrieve active off-route events")
	}
	return ctx.JSON(http.StatusOK, eventsFromViews(views))
}

// GetEventsByOrder handles GET /api/v1/off-route-events/by-order/:orderId.
func (s *Server) GetEventsByOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetEventsByOrderQuery(orderID)
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	views, err := s.h.EventsByOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err, "Failed to retrieve off-route events")
	}
	return ctx.JSON(http.StatusOK, eventsFromViews(views))
}

// GetEventDetail handles GET /api/v1/off-route-events/:eventId/detail.
func (s *Server) GetEventDetail(ctx echo.Context) error {
	eventID, err := kernel.UUIDFromString(ctx.Param("eventId"))
	if err != nil {
		return badRequest(ctx, "Invalid event id")
	}

	query, err := queries.NewGetEventDetailQuery(eventID)
	if err != nil {
		return fail(ctx, err, "Invalid request")
	}
	detail, err := s.h.EventDetail.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err, "Failed to retrieve off-route event")
	}

	response := EventDetail{
		Event:         eventFromView(detail.Event),
		TrackingCode:  detail.TrackingCode,
		DriverLicense: detail.DriverLicense,
		SenderName:    detail.SenderName,
		ReceiverName:  detail.ReceiverName,
		PackageCount:  detail.PackageCount,
		RouteLegs:     routeLegsFromViews(detail.RouteLegs),
	}
	if detail.Incident != nil {
		response.Incident = &Incident{
			ID:          detail.Incident.ID.String(),
			Description: detail.Incident.Description,
			Status:      detail.Incident.Status,
			CreatedAt:   detail.Incident.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
