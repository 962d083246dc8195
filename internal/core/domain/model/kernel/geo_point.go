package kernel

import (
	"errors"
	"fmt"
	"math"

	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/guard"
)

// EarthRadiusMeters is the mean Earth radius used by every great-circle computation.
const EarthRadiusMeters = 6371000.0

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 position in decimal degrees.
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// MustGeoPoint panics on invalid coordinates. Intended for tests and constants.
func MustGeoPoint(lat, lng float64) GeoPoint {
	p, err := NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return p
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// DistanceTo returns the haversine distance in meters.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	return EarthRadiusMeters * p.AngularDistanceTo(other)
}

// AngularDistanceTo returns the central angle between two points in radians.
func (p GeoPoint) AngularDistanceTo(other GeoPoint) float64 {
	lat1, lat2 := toRadians(p.lat), toRadians(other.lat)
	dLat := lat2 - lat1
	dLng := toRadians(other.lng - p.lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// InitialBearingTo returns the forward azimuth towards other in radians.
func (p GeoPoint) InitialBearingTo(other GeoPoint) float64 {
	lat1, lat2 := toRadians(p.lat), toRadians(other.lat)
	dLng := toRadians(other.lng - p.lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	return math.Atan2(y, x)
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("lat", lat, MinLatitude, MaxLatitude)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("lng", lng, MinLongitude, MaxLongitude)
	}
	p.lng = lng
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
