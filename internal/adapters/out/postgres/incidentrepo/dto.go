// Package incidentrepo stores incidents opened from off-route events.
package incidentrepo

import (
	"time"

	"offroute/internal/core/domain/model/incident"
	"offroute/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type IncidentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	TripID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Category    string    `gorm:"type:varchar(64);not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	LocationLat float64   `gorm:"not null"`
	LocationLng float64   `gorm:"not null"`
	Status      string    `gorm:"type:varchar(16);not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (IncidentDTO) TableName() string {
	return "off_route_incidents"
}

func fromDomain(i *incident.Incident) IncidentDTO {
	return IncidentDTO{
		ID:          i.ID().Google(),
		EventID:     i.EventID().Google(),
		TripID:      i.TripID().Google(),
		Category:    incident.Category,
		Description: i.Description(),
		CreatedBy:   i.ReportedBy().Google(),
		LocationLat: i.Location().Lat(),
		LocationLng: i.Location().Lng(),
		Status:      string(i.Status()),
		CreatedAt:   i.ReportedAt(),
	}
}

func toDomain(dto IncidentDTO) (*incident.Incident, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	eventID, err := kernel.UUIDFromGoogle(dto.EventID)
	if err != nil {
		return nil, err
	}
	tripID, err := kernel.UUIDFromGoogle(dto.TripID)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromGoogle(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPoint(dto.LocationLat, dto.LocationLng)
	if err != nil {
		return nil, err
	}

	return incident.RestoreIncident(id, eventID, tripID, dto.Description, createdBy, location,
		incident.Status(dto.Status), dto.CreatedAt.UTC())
}
