// Package nutation evaluates the IAU 1980 nutation series and the obliquity
// of the ecliptic.
//
// All series are evaluated in arcseconds; conversion to degrees happens only
// at the boundary (MeanObliquity and Result.Obliquity).
package nutation

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/unit"
)

// FundamentalArguments are the five Delaunay-style arguments of the lunar
// and solar orbits, in degrees [0, 360).
type FundamentalArguments struct {
	D      float64 // mean elongation of the Moon from the Sun
	M      float64 // mean anomaly of the Sun
	MPrime float64 // mean anomaly of the Moon
	F      float64 // Moon's argument of latitude
	Omega  float64 // longitude of the Moon's ascending node
}

// Arguments evaluates the fundamental arguments at T Julian centuries (TT)
// from J2000.0.
func Arguments(T float64) FundamentalArguments {
	return FundamentalArguments{
		D:      unit.PMod(base.Horner(T, 297.85036, 445267.111480, -0.0019142, 1.0/189474), 360),
		M:      unit.PMod(base.Horner(T, 357.52772, 35999.050340, -0.0001603, -1.0/300000), 360),
		MPrime: unit.PMod(base.Horner(T, 134.96298, 477198.867398, 0.0086972, 1.0/56250), 360),
		F:      unit.PMod(base.Horner(T, 93.27191, 483202.017538, -0.0036825, 1.0/327270), 360),
		Omega:  unit.PMod(base.Horner(T, 125.04452, -1934.136261, 0.0020708, 1.0/450000), 360),
	}
}

// Nutation returns the nutation in longitude (Δψ) and in obliquity (Δε), both
// in arcseconds, at T Julian centuries (TT) from J2000.0.
func Nutation(T float64) (dpsi, deps float64) {
	a := Arguments(T)
	d := a.D * math.Pi / 180
	m := a.M * math.Pi / 180
	mp := a.MPrime * math.Pi / 180
	f := a.F * math.Pi / 180
	om := a.Omega * math.Pi / 180

	// Sum the smallest terms first
	for i := len(terms) - 1; i >= 0; i-- {
		tm := &terms[i]
		arg := float64(tm.d)*d + float64(tm.m)*m + float64(tm.mp)*mp +
			float64(tm.f)*f + float64(tm.om)*om
		s, c := math.Sincos(arg)
		dpsi += (tm.psi0 + tm.psi1*T) * s
		deps += (tm.eps0 + tm.eps1*T) * c
	}
	// Coefficients are in units of 0.0001"
	return dpsi * 1e-4, deps * 1e-4
}

// obliquityJ2000 is 23°26'21.448" in arcseconds.
const obliquityJ2000 = 84381.448

// MeanObliquity returns the mean obliquity of the ecliptic in degrees using
// Laskar's polynomial in U = T/100. It stays within 0.01" over 1000 years
// around J2000 and within a few arcseconds over 10000 years.
func MeanObliquity(T float64) float64 {
	u := T / 100
	sec := base.Horner(u,
		obliquityJ2000, -4680.93, -1.55, 1999.25, -51.38, -249.67,
		-39.05, 7.12, 27.87, 5.79, 2.45)
	return sec / 3600
}

// MeanObliquityIAU returns the mean obliquity in degrees from the cubic IAU
// expression. Its error reaches 1" over 2000 years; MeanObliquity is used
// everywhere else in the engine.
func MeanObliquityIAU(T float64) float64 {
	sec := base.Horner(T, obliquityJ2000, -46.8150, -0.00059, 0.001813)
	return sec / 3600
}

// Result bundles the nutation angles and obliquity for one instant.
type Result struct {
	DeltaPsi      float64 // nutation in longitude, arcseconds
	DeltaEpsilon  float64 // nutation in obliquity, arcseconds
	MeanObliquity float64 // ε₀, degrees
	Obliquity     float64 // ε = ε₀ + Δε, degrees
}

// Compute evaluates nutation and obliquity at T Julian centuries (TT).
func Compute(T float64) Result {
	dpsi, deps := Nutation(T)
	eps0 := MeanObliquity(T)
	return Result{
		DeltaPsi:      dpsi,
		DeltaEpsilon:  deps,
		MeanObliquity: eps0,
		Obliquity:     eps0 + deps/3600,
	}
}

// EquationOfEquinoxes returns the nutation in right ascension, Δψ·cos ε, in
// seconds of time.
func (r Result) EquationOfEquinoxes() float64 {
	return r.DeltaPsi * math.Cos(r.Obliquity*math.Pi/180) / 15
}
