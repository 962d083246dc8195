package offroute

import (
	"errors"
	"fmt"
	"math"
	"time"

	"offroute/internal/core/domain/model/kernel"
	"offroute/internal/pkg/errs"
)

// Sample is one located position of a trip together with its computed
// distance from the planned route.
type Sample struct {
	position       kernel.GeoPoint
	distanceMeters float64
	at             time.Time
}

func NewSample(position kernel.GeoPoint, distanceMeters float64, at time.Time) (Sample, error) {
	var errList []error
	if err := position.Validate(); err != nil {
		errList = append(errList, err)
	}
	if math.IsNaN(distanceMeters) || distanceMeters < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%v must be a non-negative number", distanceMeters)))
	}
	if at.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("sample time"))
	}
	if err := errors.Join(errList...); err != nil {
		return Sample{}, err
	}

	return Sample{position: position, distanceMeters: distanceMeters, at: at.Truncate(time.Microsecond)}, nil
}

func (s Sample) Position() kernel.GeoPoint {
	return s.position
}

func (s Sample) DistanceMeters() float64 {
	return s.distanceMeters
}

func (s Sample) At() time.Time {
	return s.at
}
