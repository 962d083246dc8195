// Package trip holds the trip-side data the off-route domain reads or keeps
// about a vehicle assignment.
package trip

import (
	"errors"
	"math"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
)

// Position is the last location reported for a trip, kept regardless of
// whether an off-route event exists. The report time is kept at microsecond
// precision, the resolution of the stored timestamps.
type Position struct {
	tripID     kernel.UUID
	point      kernel.GeoPoint
	speedKmh   *float64
	bearingDeg *float64
	reportedAt time.Time
}

func NewPosition(tripID kernel.UUID, point kernel.GeoPoint, speedKmh, bearingDeg *float64, reportedAt time.Time) (Position, error) {
	var errList []error
	errList = append(errList, tripID.Validate(), point.Validate())
	if speedKmh != nil && (math.IsNaN(*speedKmh) || *speedKmh < 0) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("speed", *speedKmh, 0, "unbounded"))
	}
	if bearingDeg != nil && (math.IsNaN(*bearingDeg) || *bearingDeg < 0 || *bearingDeg >= 360) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("bearing", *bearingDeg, 0, 360))
	}
	if reportedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("reported at"))
	}
	if err := errors.Join(errList...); err != nil {
		return Position{}, err
	}

	return Position{
		tripID:     tripID,
		point:      point,
		speedKmh:   speedKmh,
		bearingDeg: bearingDeg,
		reportedAt: reportedAt.Truncate(time.Microsecond),
	}, nil
}

func (p Position) TripID() kernel.UUID    { return p.tripID }
func (p Position) Point() kernel.GeoPoint { return p.point }
func (p Position) SpeedKmh() *float64     { return p.speedKmh }
func (p Position) BearingDeg() *float64   { return p.bearingDeg }
func (p Position) ReportedAt() time.Time  { return p.reportedAt }
