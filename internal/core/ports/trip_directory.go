package ports

import (
	"context"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/trip"
)

// TripDirectory resolves a trip to its order, driver and vehicle context.
// Unknown trips fail with errs.ObjectNotFoundError.
type TripDirectory interface {
	GetTripSummary(ctx context.Context, tripID kernel.UUID) (trip.Summary, error)
}
