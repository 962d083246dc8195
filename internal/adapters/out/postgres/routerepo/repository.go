// Package routerepo reads planned leg geometry from the trip_route_legs read
// model maintained by route planning.
package routerepo

import (
	"context"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/routegeojson"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RouteLegDTO is one planned leg. Geometry is a GeoJSON LineString.
type RouteLegDTO struct {
	TripID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LegOrder int       `gorm:"primaryKey"`
	Active   bool      `gorm:"not null;default:false"`
	Geometry string    `gorm:"type:text;not null"`
}

func (RouteLegDTO) TableName() string {
	return "trip_route_legs"
}

// GormRouteRepository implements ports.RouteGeometryProvider using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// GetCurrentLegGeometry returns the active leg, or the first leg when none
// is flagged active. A trip without legs, or with an empty or unreadable
// leg, yields a DataUnavailableError.
func (r *GormRouteRepository) GetCurrentLegGeometry(ctx context.Context, tripID kernel.UUID) (kernel.RouteGeometry, error) {
	if err := tripID.Validate(); err != nil {
		return kernel.RouteGeometry{}, err
	}

	var dto RouteLegDTO
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID.Google()).
		Order("active DESC, leg_order ASC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.RouteGeometry{}, errs.NewDataUnavailableError("route leg", tripID.String())
		}
		return kernel.RouteGeometry{}, errors.Wrap(err, "select route leg")
	}

	geometry, err := routegeojson.Unmarshal([]byte(dto.Geometry))
	if err != nil {
		return kernel.RouteGeometry{}, errs.NewDataUnavailableErrorWithCause("route leg", tripID.String(), err)
	}
	if geometry.IsEmpty() {
		return kernel.RouteGeometry{}, errs.NewDataUnavailableError("route leg", tripID.String())
	}
	return geometry, nil
}
