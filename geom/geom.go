// Package geom holds the spherical math used by the region sampler.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// CartesianFromDegrees converts a latitude/longitude pair in degrees
// to a unit vector on the sphere.
func CartesianFromDegrees(lat, lon float64) []float64 {
	return CartesianFromRadians(lat*math.Pi/180, lon*math.Pi/180)
}

// CartesianFromRadians converts a latitude/longitude pair in radians
// to a unit vector on the sphere.
func CartesianFromRadians(lat, lon float64) []float64 {
	return []float64{
		math.Cos(lat) * math.Cos(lon),
		math.Cos(lat) * math.Sin(lon),
		math.Sin(lat),
	}
}

// UnnormalizedDensity evaluates the directional kernel
// exp(kappa * <x, mean/|mean|>) of the unit vector x around the
// unnormalized mean direction. A zero mean carries no direction and
// scores zero.
func UnnormalizedDensity(x, mean []float64, kappa float64) float64 {
	norm := floats.Norm(mean, 2)
	if norm == 0 {
		return 0
	}
	return math.Exp(kappa * floats.Dot(x, mean) / norm)
}

// CRPScore is the constant score a new-region slot receives for a
// toponym: the CRP concentration times the surface-area normalizer of
// the directional kernel, 4*pi*sinh(kappa)/kappa.
func CRPScore(crpAlpha, kappa float64) float64 {
	return crpAlpha * 4 * math.Pi * math.Sinh(kappa) / kappa
}
