// Package pgtest starts a disposable PostgreSQL for integration suites.
package pgtest

import (
	"context"
	"time"

	postgres_adapter "offroute/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and migrates every table, read models
// included.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}
	d := &Database{container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	d.DB, err = gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	if err = postgres_adapter.Migrate(ctx, d.DB, true); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}
	return d, nil
}

func (d *Database) Truncate(ctx context.Context) error {
	return d.DB.WithContext(ctx).Exec(`TRUNCATE TABLE
		off_route_events, off_route_incidents, trip_last_positions, trip_route_legs, trip_summaries`).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.container == nil {
		return nil
	}
	return d.container.Terminate(ctx)
}
