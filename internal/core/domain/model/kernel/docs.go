// Package kernel holds the shared value objects of the off-route domain.
//
// The package includes:
//   - UUID: identifier value object wrapping google/uuid
//   - GeoPoint: a validated WGS84 latitude/longitude pair with great-circle helpers
//   - RouteGeometry: the ordered waypoints of a planned route leg
//
// Values are immutable and safe for concurrent use.
package kernel
