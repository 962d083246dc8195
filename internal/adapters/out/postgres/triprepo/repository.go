// Package triprepo reads the trip_summaries read model that joins a trip to
// its order, driver and vehicle.
package triprepo

import (
	"context"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/trip"
	"offroute/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SummaryDTO struct {
	TripID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderCode     string
	TrackingCode  string
	DriverName    string
	DriverPhone   string
	DriverLicense string
	VehiclePlate  string
	VehicleType   string
	SenderName    string
	ReceiverName  string
	PackageCount  int
}

func (SummaryDTO) TableName() string {
	return "trip_summaries"
}

// GormTripRepository implements ports.TripDirectory using GORM.
type GormTripRepository struct {
	db *gorm.DB
}

func NewGormTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

func (r *GormTripRepository) GetTripSummary(ctx context.Context, tripID kernel.UUID) (trip.Summary, error) {
	if err := tripID.Validate(); err != nil {
		return trip.Summary{}, err
	}

	var dto SummaryDTO
	if err := r.db.WithContext(ctx).First(&dto, "trip_id = ?", tripID.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trip.Summary{}, errs.NewObjectNotFoundError("trip", tripID.String())
		}
		return trip.Summary{}, errors.Wrap(err, "select trip summary")
	}

	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return trip.Summary{}, err
	}

	return trip.Summary{
		TripID:        tripID,
		OrderID:       orderID,
		OrderCode:     dto.OrderCode,
		TrackingCode:  dto.TrackingCode,
		DriverName:    dto.DriverName,
		DriverPhone:   dto.DriverPhone,
		DriverLicense: dto.DriverLicense,
		VehiclePlate:  dto.VehiclePlate,
		VehicleType:   dto.VehicleType,
		SenderName:    dto.SenderName,
		ReceiverName:  dto.ReceiverName,
		PackageCount:  dto.PackageCount,
	}, nil
}
