package ports

import (
	"context"

	"offroute/internal/core/domain/model/incident"
	"offroute/internal/core/domain/model/kernel"
)

// IncidentRepository creates incidents inside the caller's transaction.
type IncidentRepository interface {
	Create(ctx context.Context, incident *incident.Incident) error
	Get(ctx context.Context, id kernel.UUID) (*incident.Incident, error)
}
