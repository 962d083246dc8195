// Package postgres provides the GORM-based Unit of Work used by every
// command handler. Repositories obtained from a GormUnitOfWork share its
// transaction once Begin has been called.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	event, err := uow.OffRouteEventRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// mutate event ...
//	if err := uow.OffRouteEventRepository().Update(ctx, event); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance must be used by a single goroutine. Concurrent
// writers to the same event are serialized optimistically by the event
// repository's version check, not by database locks.
package postgres

import (
	"context"

	"offroute/internal/adapters/out/postgres/eventrepo"
	"offroute/internal/adapters/out/postgres/incidentrepo"
	"offroute/internal/adapters/out/postgres/positionrepo"
	"offroute/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates a fresh UnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps one GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit fails with gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the active transaction. It is a no-op after Commit so
// handlers can always defer it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OffRouteEventRepository() ports.OffRouteEventRepository {
	return eventrepo.NewGormEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) IncidentRepository() ports.IncidentRepository {
	return incidentrepo.NewGormIncidentRepository(uow.conn())
}

func (uow *GormUnitOfWork) TripPositionRepository() ports.TripPositionRepository {
	return positionrepo.NewGormPositionRepository(uow.conn())
}

// conn returns the transaction when one is active, the plain connection
// otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
