package ports

import (
	"context"

	"offroute/internal/core/domain/model/kernel"
)

// RouteGeometryProvider returns the planned geometry of the leg a trip is
// currently driving. When nothing is planned it fails with
// errs.DataUnavailableError.
type RouteGeometryProvider interface {
	GetCurrentLegGeometry(ctx context.Context, tripID kernel.UUID) (kernel.RouteGeometry, error)
}
