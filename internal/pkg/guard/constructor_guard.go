// Package guard helps value objects and aggregates detect zero-value
// instances that bypassed their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into types that must only be built by their
// constructor. A zero value fails Validate.
//
//	type GeoPoint struct {
//	    lat, lng float64
//	    guard    guard.ConstructorGuard
//	}
//
//	func (p GeoPoint) Validate() error {
//	    return p.guard.Validate(ErrGeoPointIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError, or ErrDefaultConstructorGuard when it is nil,
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
