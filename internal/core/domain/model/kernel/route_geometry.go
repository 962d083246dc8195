package kernel

// RouteGeometry is the ordered list of waypoints of the leg a vehicle is
// currently driving. An empty geometry means the route is unknown.
type RouteGeometry struct {
	waypoints []GeoPoint
}

// NewRouteGeometry copies the waypoints; every point must be valid.
func NewRouteGeometry(waypoints []GeoPoint) (RouteGeometry, error) {
	copied := make([]GeoPoint, 0, len(waypoints))
	for _, wp := range waypoints {
		if err := wp.Validate(); err != nil {
			return RouteGeometry{}, err
		}
		copied = append(copied, wp)
	}
	return RouteGeometry{waypoints: copied}, nil
}

func (g RouteGeometry) Waypoints() []GeoPoint {
	out := make([]GeoPoint, len(g.waypoints))
	copy(out, g.waypoints)
	return out
}

func (g RouteGeometry) Len() int {
	return len(g.waypoints)
}

func (g RouteGeometry) IsEmpty() bool {
	return len(g.waypoints) == 0
}
