// Package photometry derives what an observer sees of a body: phase angle,
// illuminated fraction, angular size, apparent magnitude, Saturn's ring
// aspect and the central meridian of Mars and Jupiter.
//
// Distances are in AU unless a name says otherwise; angles are degrees.
package photometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDomain is returned for geometry that cannot describe a real body.
	ErrDomain = errors.New("photometry: input out of domain")
	// ErrNoMagnitude is returned when a body's magnitude model does not
	// apply to the given geometry.
	ErrNoMagnitude = errors.New("photometry: magnitude undefined")
)

// triangleSlack absorbs rounding in distances that close the Sun–Earth–body
// triangle exactly (conjunction and opposition).
const triangleSlack = 1e-9

// PhaseAngle returns the Sun–body–Earth angle in degrees from the body–Sun
// distance r, the body–Earth distance delta and the Earth–Sun distance R.
func PhaseAngle(r, delta, R float64) (float64, error) {
	for _, d := range []float64{r, delta, R} {
		if !(d > 0) || math.IsInf(d, 0) {
			return 0, fmt.Errorf("phase angle from r=%v Δ=%v R=%v: %w", r, delta, R, ErrDomain)
		}
	}
	c := (r*r + delta*delta - R*R) / (2 * r * delta)
	if math.Abs(c) > 1+triangleSlack {
		return 0, fmt.Errorf("distances r=%v Δ=%v R=%v do not form a triangle: %w", r, delta, R, ErrDomain)
	}
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c) * 180 / math.Pi, nil
}

// IlluminatedFraction returns the illuminated fraction of the disk, 0..1,
// for phase angle i in degrees.
func IlluminatedFraction(i float64) float64 {
	return (1 + math.Cos(i*math.Pi/180)) / 2
}

// AngularDiameter returns the apparent diameter in arcseconds of a body of
// the given physical diameter at the given distance, both in km.
func AngularDiameter(diameterKm, distanceKm float64) (float64, error) {
	if !(diameterKm >= 0) || !(distanceKm > 0) {
		return 0, fmt.Errorf("angular diameter of %v km at %v km: %w", diameterKm, distanceKm, ErrDomain)
	}
	ratio := diameterKm / distanceKm
	if ratio > 1 {
		return 0, fmt.Errorf("body of %v km closer than its own diameter (%v km): %w", diameterKm, distanceKm, ErrDomain)
	}
	return math.Asin(ratio) * 180 / math.Pi * 3600, nil
}
