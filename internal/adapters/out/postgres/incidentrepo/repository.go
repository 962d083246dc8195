package incidentrepo

import (
	"context"

	"offroute/internal/core/domain/model/incident"
	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormIncidentRepository implements ports.IncidentRepository using GORM.
type GormIncidentRepository struct {
	db *gorm.DB
}

func NewGormIncidentRepository(db *gorm.DB) *GormIncidentRepository {
	return &GormIncidentRepository{db: db}
}

func (r *GormIncidentRepository) Create(ctx context.Context, i *incident.Incident) error {
	if err := i.Validate(); err != nil {
		return err
	}

	dto := fromDomain(i)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrap(err, "insert incident")
	}
	return nil
}

func (r *GormIncidentRepository) Get(ctx context.Context, id kernel.UUID) (*incident.Incident, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto IncidentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("incident", id.String())
		}
		return nil, errors.Wrap(err, "select incident")
	}

	return toDomain(dto)
}
