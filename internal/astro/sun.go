package astro

import (
	"math"

	"github.com/litescript/ls-almanac/internal/nutation"
	"github.com/litescript/ls-almanac/internal/timescale"
	"github.com/soniakeys/meeus/v3/base"
)

// SunPosition returns the apparent geocentric position of the Sun and its
// distance in AU, from the low-precision solar theory (about 0.01°).
func SunPosition(in timescale.Instant) (Equatorial, float64) {
	T := in.TE()

	L0 := base.Horner(T, 280.46646, 36000.76983, 0.0003032)
	M := degToRad(base.Horner(T, 357.52911, 35999.05029, -0.0001537))
	e := base.Horner(T, 0.016708634, -0.000042037, -0.0000001267)

	// Equation of center
	C := base.Horner(T, 1.914602, -0.004817, -0.000014)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	trueLon := L0 + C
	nu := M + degToRad(C)
	R := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))

	// Aberration and nutation in longitude
	omega := degToRad(125.04 - 1934.136*T)
	lambda := trueLon - 0.00569 - 0.00478*math.Sin(omega)
	eps := nutation.MeanObliquity(T) + 0.00256*math.Cos(omega)

	return EclipticToEquatorial(lambda, 0, eps), R
}

// SunSeparation returns the angle between eq and the Sun in degrees.
func SunSeparation(in timescale.Instant, eq Equatorial) float64 {
	sun, _ := SunPosition(in)
	return Separation(sun, eq)
}

// SunSeparationTier categorizes Sun separation for display.
type SunSeparationTier int

const (
	SunSepSafe    SunSeparationTier = iota // >= 20 degrees
	SunSepCaution                          // 10-20 degrees
	SunSepWarning                          // < 10 degrees
)

func (s SunSeparationTier) String() string {
	switch s {
	case SunSepWarning:
		return "warning"
	case SunSepCaution:
		return "caution"
	default:
		return "safe"
	}
}

// GetSunSeparationTier returns the tier for a separation angle.
func GetSunSeparationTier(sepDeg float64) SunSeparationTier {
	switch {
	case sepDeg < 10:
		return SunSepWarning
	case sepDeg < 20:
		return SunSepCaution
	default:
		return SunSepSafe
	}
}
