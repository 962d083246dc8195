package postgres

import (
	"context"

	"offroute/internal/adapters/out/postgres/eventrepo"
	"offroute/internal/adapters/out/postgres/incidentrepo"
	"offroute/internal/adapters/out/postgres/positionrepo"
	"offroute/internal/adapters/out/postgres/routerepo"
	"offroute/internal/adapters/out/postgres/triprepo"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates the tables owned by this service and the one-active-event
// index. When withReadModels is set the trip_route_legs and trip_summaries
// read models are created too; in production they belong to other services.
func Migrate(ctx context.Context, db *gorm.DB, withReadModels bool) error {
	models := []any{
		&eventrepo.EventDTO{},
		&incidentrepo.IncidentDTO{},
		&positionrepo.PositionDTO{},
	}
	if withReadModels {
		models = append(models, &routerepo.RouteLegDTO{}, &triprepo.SummaryDTO{})
	}

	conn := db.WithContext(ctx)
	if err := conn.AutoMigrate(models...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	if err := conn.Exec(eventrepo.ActiveTripIndexSQL()).Error; err != nil {
		return errors.Wrap(err, "create active trip index")
	}
	return nil
}
