package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories it returns
// run inside the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback is a no-op after Commit so it can always be deferred.
	Rollback(ctx context.Context) error

	OffRouteEventRepository() OffRouteEventRepository
	IncidentRepository() IncidentRepository
	TripPositionRepository() TripPositionRepository
}
