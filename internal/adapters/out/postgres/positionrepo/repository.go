// Package positionrepo keeps the last reported position of every trip.
package positionrepo

import (
	"context"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PositionDTO struct {
	TripID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Lat        float64   `gorm:"not null"`
	Lng        float64   `gorm:"not null"`
	SpeedKmh   *float64
	BearingDeg *float64
	ReportedAt time.Time `gorm:"not null"`
}

func (PositionDTO) TableName() string {
	return "trip_last_positions"
}

// GormPositionRepository implements ports.TripPositionRepository using GORM.
type GormPositionRepository struct {
	db *gorm.DB
}

func NewGormPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// Save upserts the position unless the stored one was reported later.
func (r *GormPositionRepository) Save(ctx context.Context, p trip.Position) error {
	dto := PositionDTO{
		TripID:     p.TripID().Google(),
		Lat:        p.Point().Lat(),
		Lng:        p.Point().Lng(),
		SpeedKmh:   p.SpeedKmh(),
		BearingDeg: p.BearingDeg(),
		ReportedAt: p.ReportedAt(),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "trip_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lat", "lng", "speed_kmh", "bearing_deg", "reported_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "trip_last_positions.reported_at < excluded.reported_at"},
		}},
	}).Create(&dto).Error
	if err != nil {
		return errors.Wrap(err, "upsert trip position")
	}
	return nil
}

func (r *GormPositionRepository) Get(ctx context.Context, tripID kernel.UUID) (trip.Position, error) {
	if err := tripID.Validate(); err != nil {
		return trip.Position{}, err
	}

	var dto PositionDTO
	if err := r.db.WithContext(ctx).First(&dto, "trip_id = ?", tripID.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trip.Position{}, errs.NewObjectNotFoundError("trip position", tripID.String())
		}
		return trip.Position{}, errors.Wrap(err, "select trip position")
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return trip.Position{}, err
	}
	return trip.NewPosition(tripID, point, dto.SpeedKmh, dto.BearingDeg, dto.ReportedAt.UTC())
}
