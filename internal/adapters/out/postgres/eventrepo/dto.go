// Package eventrepo persists off-route event aggregates with optimistic
// versioning.
package eventrepo

import (
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/core/domain/model/offroute"

	"github.com/google/uuid"
)

// EventDTO is one row of off_route_events.
type EventDTO struct {
	ID                              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID                          uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID                         uuid.UUID `gorm:"type:uuid;not null;index"`
	LastKnownLat                    float64   `gorm:"not null"`
	LastKnownLng                    float64   `gorm:"not null"`
	DistanceFromRouteMeters         float64   `gorm:"not null"`
	PreviousDistanceFromRouteMeters *float64
	LastLocationUpdateAt            time.Time `gorm:"not null"`
	OffRouteStartTime               time.Time `gorm:"not null;index"`
	YellowWarningSentAt             *time.Time
	RedWarningSentAt                *time.Time
	GracePeriodExpiresAt            *time.Time `gorm:"index"`
	GracePeriodExtendedAt           *time.Time
	GracePeriodExtensionCount       int    `gorm:"not null;default:0"`
	WarningStatus                   string `gorm:"type:varchar(32);not null;index"`
	CanContactDriver                *bool
	LastContactAttemptAt            *time.Time
	ContactNotes                    string `gorm:"type:text"`
	ContactedAt                     *time.Time
	ContactedBy                     *uuid.UUID `gorm:"type:uuid"`
	ResolvedAt                      *time.Time
	ResolvedReason                  string     `gorm:"type:text"`
	ResolvedBy                      *uuid.UUID `gorm:"type:uuid"`
	IssueID                         *uuid.UUID `gorm:"type:uuid"`
	Version                         int64      `gorm:"not null"`
}

func (EventDTO) TableName() string {
	return "off_route_events"
}

func fromDomain(e *offroute.Event) EventDTO {
	s := e.State()
	return EventDTO{
		ID:                              s.ID.Google(),
		TripID:                          s.TripID.Google(),
		OrderID:                         s.OrderID.Google(),
		LastKnownLat:                    s.LastKnownPosition.Lat(),
		LastKnownLng:                    s.LastKnownPosition.Lng(),
		DistanceFromRouteMeters:         s.DistanceMeters,
		PreviousDistanceFromRouteMeters: s.PreviousDistanceMeters,
		LastLocationUpdateAt:            s.LastLocationUpdateAt,
		OffRouteStartTime:               s.OffRouteStartTime,
		YellowWarningSentAt:             s.YellowWarningSentAt,
		RedWarningSentAt:                s.RedWarningSentAt,
		GracePeriodExpiresAt:            s.GracePeriodExpiresAt,
		GracePeriodExtendedAt:           s.GracePeriodExtendedAt,
		GracePeriodExtensionCount:       s.GracePeriodExtensionCount,
		WarningStatus:                   s.Status.String(),
		CanContactDriver:                s.CanContactDriver,
		LastContactAttemptAt:            s.LastContactAttemptAt,
		ContactNotes:                    s.ContactNotes,
		ContactedAt:                     s.ContactedAt,
		ContactedBy:                     googleOrNil(s.ContactedBy),
		ResolvedAt:                      s.ResolvedAt,
		ResolvedReason:                  s.ResolvedReason,
		ResolvedBy:                      googleOrNil(s.ResolvedBy),
		IssueID:                         googleOrNil(s.IssueID),
		Version:                         s.Version,
	}
}

func toDomain(dto EventDTO) (*offroute.Event, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	tripID, err := kernel.UUIDFromGoogle(dto.TripID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	position, err := kernel.NewGeoPoint(dto.LastKnownLat, dto.LastKnownLng)
	if err != nil {
		return nil, err
	}
	status, err := offroute.StatusFromString(dto.WarningStatus)
	if err != nil {
		return nil, err
	}
	contactedBy, err := uuidOrNil(dto.ContactedBy)
	if err != nil {
		return nil, err
	}
	resolvedBy, err := uuidOrNil(dto.ResolvedBy)
	if err != nil {
		return nil, err
	}
	issueID, err := uuidOrNil(dto.IssueID)
	if err != nil {
		return nil, err
	}

	return offroute.RestoreEvent(offroute.EventState{
		ID:                        id,
		TripID:                    tripID,
		OrderID:                   orderID,
		LastKnownPosition:         position,
		DistanceMeters:            dto.DistanceFromRouteMeters,
		PreviousDistanceMeters:    dto.PreviousDistanceFromRouteMeters,
		LastLocationUpdateAt:      dto.LastLocationUpdateAt.UTC(),
		OffRouteStartTime:         dto.OffRouteStartTime.UTC(),
		YellowWarningSentAt:       utcOrNil(dto.YellowWarningSentAt),
		RedWarningSentAt:          utcOrNil(dto.RedWarningSentAt),
		GracePeriodExpiresAt:      utcOrNil(dto.GracePeriodExpiresAt),
		GracePeriodExtendedAt:     utcOrNil(dto.GracePeriodExtendedAt),
		GracePeriodExtensionCount: dto.GracePeriodExtensionCount,
		Status:                    status,
		CanContactDriver:          dto.CanContactDriver,
		LastContactAttemptAt:      utcOrNil(dto.LastContactAttemptAt),
		ContactNotes:              dto.ContactNotes,
		ContactedAt:               utcOrNil(dto.ContactedAt),
		ContactedBy:               contactedBy,
		ResolvedAt:                utcOrNil(dto.ResolvedAt),
		ResolvedReason:            dto.ResolvedReason,
		ResolvedBy:                resolvedBy,
		IssueID:                   issueID,
		Version:                   dto.Version,
	})
}

func googleOrNil(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Google()
	return &raw
}

func uuidOrNil(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
