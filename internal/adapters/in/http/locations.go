package http

import (
	"net/http"

	"offroute/internal/core/application/usecases/commands"
	"offroute/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// PostLocation handles POST /api/v1/trips/:tripId/locations.
func (s *Server) PostLocation(ctx echo.Context) error {
	tripID, err := kernel.UUIDFromString(ctx.Param("tripId"))
	if err != nil {
		return badRequest(ctx, "Invalid trip id")
	}

	var req LocationUpdateRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if req.Lat == nil || req.Lng == nil {
		return badRequest(ctx, "lat and lng are required")
	}

	at := s.stamp()
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}

	cmd, err := commands.NewProcessLocationUpdateCommand(tripID, *req.Lat, *req.Lng, req.SpeedKmh, req.BearingDeg, at)
	if err != nil {
		return fail(ctx, err, "Invalid location")
	}

	distance, err := s.h.ProcessLocationUpdate.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err, "Failed to process location")
	}

	return ctx.JSON(http.StatusOK, LocationUpdateResponse{DistanceFromRouteMeters: distance})
}
