package offroute

import (
	"errors"
	"fmt"
	"time"

	"offroute/internal/pkg/errs"
	"offroute/internal/pkg/guard"
)

const (
	DefaultYellowThresholdMeters = 100.0
	DefaultRedThresholdMeters    = 300.0
	DefaultReturnThresholdMeters = 50.0
	DefaultRedAfter              = 10 * time.Minute
	DefaultGracePeriod           = 20 * time.Minute
	DefaultGraceExtension        = 15 * time.Minute
	DefaultMaxGraceExtensions    = 3
)

var ErrPolicyIsNotConstructed = errors.New("Policy must be created via NewPolicy or DefaultPolicy")

// Thresholds are the tunable parameters of detection and escalation.
type Thresholds struct {
	YellowThresholdMeters float64
	RedThresholdMeters    float64
	ReturnThresholdMeters float64
	RedAfter              time.Duration
	GracePeriod           time.Duration
	GraceExtension        time.Duration
	MaxGraceExtensions    int
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		YellowThresholdMeters: DefaultYellowThresholdMeters,
		RedThresholdMeters:    DefaultRedThresholdMeters,
		ReturnThresholdMeters: DefaultReturnThresholdMeters,
		RedAfter:              DefaultRedAfter,
		GracePeriod:           DefaultGracePeriod,
		GraceExtension:        DefaultGraceExtension,
		MaxGraceExtensions:    DefaultMaxGraceExtensions,
	}
}

// Policy is a validated set of Thresholds. The return threshold is always
// strictly below the yellow threshold so a vehicle parked near the boundary
// cannot flap between states.
type Policy struct {
	thresholds Thresholds
	guard      guard.ConstructorGuard
}

func NewPolicy(t Thresholds) (Policy, error) {
	var errList []error

	if t.ReturnThresholdMeters < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("return threshold",
			fmt.Errorf("%.2f must not be negative", t.ReturnThresholdMeters)))
	}
	if t.YellowThresholdMeters <= t.ReturnThresholdMeters {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("yellow threshold",
			fmt.Errorf("%.2f must be greater than return threshold %.2f", t.YellowThresholdMeters, t.ReturnThresholdMeters)))
	}
	if t.RedThresholdMeters < t.YellowThresholdMeters {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("red threshold",
			fmt.Errorf("%.2f must not be less than yellow threshold %.2f", t.RedThresholdMeters, t.YellowThresholdMeters)))
	}
	if t.RedAfter <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("red after", fmt.Errorf("%s must be positive", t.RedAfter)))
	}
	if t.GracePeriod <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("grace period", fmt.Errorf("%s must be positive", t.GracePeriod)))
	}
	if t.GraceExtension <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("grace extension", fmt.Errorf("%s must be positive", t.GraceExtension)))
	}
	if t.MaxGraceExtensions < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max grace extensions", t.MaxGraceExtensions, 0, "unbounded"))
	}

	if err := errors.Join(errList...); err != nil {
		return Policy{}, err
	}

	return Policy{thresholds: t, guard: guard.NewConstructorGuard()}, nil
}

// DefaultPolicy returns a Policy built from DefaultThresholds.
func DefaultPolicy() Policy {
	p, err := NewPolicy(DefaultThresholds())
	if err != nil {
		panic(err)
	}
	return p
}

func (p Policy) Validate() error {
	return p.guard.Validate(ErrPolicyIsNotConstructed)
}

func (p Policy) Thresholds() Thresholds {
	return p.thresholds
}

func (p Policy) YellowThresholdMeters() float64 { return p.thresholds.YellowThresholdMeters }
func (p Policy) RedThresholdMeters() float64    { return p.thresholds.RedThresholdMeters }
func (p Policy) ReturnThresholdMeters() float64 { return p.thresholds.ReturnThresholdMeters }
func (p Policy) RedAfter() time.Duration        { return p.thresholds.RedAfter }
func (p Policy) GracePeriod() time.Duration     { return p.thresholds.GracePeriod }
func (p Policy) GraceExtension() time.Duration  { return p.thresholds.GraceExtension }
func (p Policy) MaxGraceExtensions() int        { return p.thresholds.MaxGraceExtensions }

// Classify maps a distance to the sample trigger it produces.
func (p Policy) Classify(distanceMeters float64) Trigger {
	switch {
	case distanceMeters >= p.thresholds.RedThresholdMeters:
		return VeryFarSample
	case distanceMeters >= p.thresholds.YellowThresholdMeters:
		return FarSample
	case distanceMeters <= p.thresholds.ReturnThresholdMeters:
		return ReturnedSample
	default:
		return HoldSample
	}
}

// IsDeviating reports whether a distance is at or beyond the yellow threshold.
func (p Policy) IsDeviating(distanceMeters float64) bool {
	return distanceMeters >= p.thresholds.YellowThresholdMeters
}
