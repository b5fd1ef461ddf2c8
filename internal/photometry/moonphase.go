package photometry

import (
	"math"

	"github.com/litescript/ls-almanac/internal/nutation"
	"github.com/litescript/ls-almanac/internal/timescale"
)

// SynodicMonth is the mean length of the lunar cycle in days.
const SynodicMonth = 29.530588853

// LunarPhase describes the Moon's phase at one instant.
type LunarPhase struct {
	Elongation  float64 // Moon minus Sun in ecliptic longitude, [0, 360)
	PhaseAngle  float64 // Sun–Moon–Earth angle, [0, 180]
	Illuminated float64 // 0..1
	AgeDays     float64 // days since new moon, [0, SynodicMonth)
	Waxing      bool
	Name        string
}

// MoonPhase evaluates the low-precision lunar phase model (about 0.5° in
// elongation). It needs no ephemeris.
func MoonPhase(in timescale.Instant) LunarPhase {
	a := nutation.Arguments(in.TE())
	D, M, Mp := rad(a.D), rad(a.M), rad(a.MPrime)

	e := wrap360(a.D +
		6.289*math.Sin(Mp) -
		2.100*math.Sin(M) +
		1.274*math.Sin(2*D-Mp) +
		0.658*math.Sin(2*D) +
		0.214*math.Sin(2*Mp) +
		0.110*math.Sin(D))

	i := math.Abs(180 - e)
	k := IlluminatedFraction(i)
	waxing := e < 180
	return LunarPhase{
		Elongation:  e,
		PhaseAngle:  i,
		Illuminated: k,
		AgeDays:     e / 360 * SynodicMonth,
		Waxing:      waxing,
		Name:        phaseName(k, waxing),
	}
}

// phaseName returns one of the eight conventional phase names.
func phaseName(k float64, waxing bool) string {
	switch {
	case k < 0.01:
		return "New Moon"
	case k > 0.99:
		return "Full Moon"
	case k >= 0.49 && k <= 0.51:
		if waxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case k < 0.5:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
