package services

import (
	"math"

	"offroute/internal/core/domain/model/kernel"
)

// DeviationCalculator measures how far a position is from a planned route leg.
type DeviationCalculator struct{}

func NewDeviationCalculator() DeviationCalculator {
	return DeviationCalculator{}
}

// DistanceToRoute returns the minimum great-circle distance in meters from
// position to any segment of route. ok is false when the geometry is empty,
// which callers must treat as "unknown" rather than "on route".
func (c DeviationCalculator) DistanceToRoute(position kernel.GeoPoint, route kernel.RouteGeometry) (float64, bool) {
	waypoints := route.Waypoints()
	switch len(waypoints) {
	case 0:
		return 0, false
	case 1:
		return position.DistanceTo(waypoints[0]), true
	}

	best := math.MaxFloat64
	for i := 1; i < len(waypoints); i++ {
		if d := c.distanceToSegment(position, waypoints[i-1], waypoints[i]); d < best {
			best = d
		}
	}
	return best, true
}

// distanceToSegment projects p onto the great circle through a and b. When
// the projection falls outside the segment the nearer endpoint is used.
func (c DeviationCalculator) distanceToSegment(p, a, b kernel.GeoPoint) float64 {
	segment := a.AngularDistanceTo(b)
	if segment == 0 {
		return p.DistanceTo(a)
	}

	toPoint := a.AngularDistanceTo(p)
	if toPoint == 0 {
		return 0
	}

	bearingDiff := a.InitialBearingTo(p) - a.InitialBearingTo(b)
	if math.Cos(bearingDiff) < 0 {
		return p.DistanceTo(a)
	}

	crossTrack := math.Asin(clamp(math.Sin(toPoint) * math.Sin(bearingDiff)))
	alongTrack := math.Acos(clamp(math.Cos(toPoint) / math.Cos(crossTrack)))
	if alongTrack > segment {
		return p.DistanceTo(b)
	}

	return math.Abs(crossTrack) * kernel.EarthRadiusMeters
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
