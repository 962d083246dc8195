// Package services holds stateless domain services of the off-route domain.
//
// DeviationCalculator computes the great-circle distance from a vehicle
// position to the nearest segment of its planned route leg.
package services
