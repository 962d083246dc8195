// Package http exposes location ingest, staff actions and event queries
// over echo. It binds requests to commands and maps errors to status codes;
// it holds no business rules.
package http

import (
	"context"
	"net/http"
	"time"

	"offroute/internal/core/application/usecases/commands"
	"offroute/internal/core/application/usecases/queries"
	"offroute/internal/core/domain/model/incident"
	"offroute/internal/core/domain/model/offroute"

	"github.com/labstack/echo/v4"
)

type (
	LocationUpdateHandler interface {
		Handle(ctx context.Context, cmd commands.ProcessLocationUpdateCommand) (*float64, error)
	}
	ConfirmSafeHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmSafeCommand) (*offroute.Event, error)
	}
	MarkNoContactHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNoContactCommand) (*offroute.Event, error)
	}
	ConfirmContactHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmContactCommand) (*offroute.Event, error)
	}
	ExtendGracePeriodHandler interface {
		Handle(ctx context.Context, cmd commands.ExtendGracePeriodCommand) (*offroute.Event, error)
	}
	CreateIssueHandler interface {
		Handle(ctx context.Context, cmd commands.CreateIssueFromEventCommand) (*offroute.Event, *incident.Incident, error)
	}
	ResetHandler interface {
		Handle(ctx context.Context, cmd commands.ResetOffRouteEventCommand) (*offroute.Event, error)
	}
	ActiveEventsHandler interface {
		Handle(ctx context.Context, query queries.GetActiveEventsQuery) ([]queries.EventView, error)
	}
	EventsByOrderHandler interface {
		Handle(ctx context.Context, query queries.GetEventsByOrderQuery) ([]queries.EventView, error)
	}
	EventDetailHandler interface {
		Handle(ctx context.Context, query queries.GetEventDetailQuery) (queries.GetEventDetailQueryResponse, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Command handlers
	ProcessLocationUpdate LocationUpdateHandler
	ConfirmSafe           ConfirmSafeHandler
	MarkNoContact         MarkNoContactHandler
	ConfirmContact        ConfirmContactHandler
	ExtendGracePeriod     ExtendGracePeriodHandler
	CreateIssue           CreateIssueHandler
	Reset                 ResetHandler

	// Query handlers
	ActiveEvents  ActiveEventsHandler
	EventsByOrder EventsByOrderHandler
	EventDetail   EventDetailHandler
}

type Server struct {
	h   Handlers
	now func() time.Time
}

// NewServer creates a server stamping staff actions and undated samples
// with now.
func NewServer(h Handlers, now func() time.Time) *Server {
	return &Server{h: h, now: now}
}

// Register binds every route onto e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")

	v1.POST("/trips/:tripId/locations", s.PostLocation)
	v1.POST("/trips/:tripId/off-route/reset", s.ResetOffRoute)

	events := v1.Group("/off-route-events")
	events.GET("/active", s.GetActiveEvents)
	events.GET("/by-order/:orderId", s.GetEventsByOrder)
	events.GET("/:eventId/detail", s.GetEventDetail)
	events.POST("/:eventId/confirm-safe", s.ConfirmSafe)
	events.POST("/:eventId/mark-no-contact", s.MarkNoContact)
	events.POST("/:eventId/confirm-contact", s.ConfirmContact)
	events.POST("/:eventId/extend-grace-period", s.ExtendGracePeriod)
	events.POST("/:eventId/create-issue", s.CreateIssue)
}

func (s *Server) stamp() time.Time {
	return s.now().UTC()
}
