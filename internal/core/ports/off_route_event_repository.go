// Package ports defines the contracts between the off-route core and its
// infrastructure: persistence, route geometry, trip context and notifications.
package ports

import (
	"context"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"
)

// OffRouteEventRepository persists off-route event aggregates.
type OffRouteEventRepository interface {
	// Add stores a newly opened event. Opening a second active event for the
	// same trip fails with errs.VersionIsInvalidError.
	Add(ctx context.Context, event *offroute.Event) error

	// Update stores changes if the stored version still matches the event's.
	// A stale write fails with errs.VersionIsInvalidError; on success the
	// event's version is advanced.
	Update(ctx context.Context, event *offroute.Event) error

	// Get fails with errs.ObjectNotFoundError when the event does not exist.
	Get(ctx context.Context, id kernel.UUID) (*offroute.Event, error)

	// GetActiveByTrip returns nil and no error when the trip has no active event.
	GetActiveByTrip(ctx context.Context, tripID kernel.UUID) (*offroute.Event, error)

	GetAllActive(ctx context.Context) ([]*offroute.Event, error)

	// GetByStatusAndGraceExpiredBefore lists events in status whose grace
	// period expired strictly before now.
	GetByStatusAndGraceExpiredBefore(ctx context.Context, status offroute.Status, now time.Time) ([]*offroute.Event, error)

	// GetByOrder lists all events of an order, newest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*offroute.Event, error)
}
