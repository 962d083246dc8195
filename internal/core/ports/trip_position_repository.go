package ports

import (
	"context"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/trip"
)

// TripPositionRepository keeps the last known position per trip.
type TripPositionRepository interface {
	// Save upserts the position. Older positions never overwrite newer ones.
	Save(ctx context.Context, position trip.Position) error
	Get(ctx context.Context, tripID kernel.UUID) (trip.Position, error)
}
