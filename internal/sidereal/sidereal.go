// Package sidereal computes Greenwich and local sidereal time, mean and
// apparent. All results are hours in [0, 24); longitudes are east-positive
// degrees.
package sidereal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-almanac/internal/nutation"
	"github.com/litescript/ls-almanac/internal/timescale"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/unit"
)

// SolarToSidereal is the ratio of the mean sidereal day rate to the solar
// day rate.
const SolarToSidereal = 1.00273790935

// ErrDomain is returned for sidereal inputs outside their valid range.
var ErrDomain = errors.New("sidereal: input out of domain")

// Time is the full set of sidereal times for one instant and longitude.
type Time struct {
	GMST0 float64 // Greenwich mean sidereal time at 0h UT
	GMST  float64
	GAST  float64
	LMST  float64
	LAST  float64
}

// GMST0 returns Greenwich mean sidereal time at 0h UT of the instant's
// calendar date (Meeus 12.3).
func GMST0(in timescale.Instant) float64 {
	T := timescale.JulianCentury(in.JD0())
	deg := base.Horner(T, 100.46061837, 36000.770053608, 0.000387933, -1.0/38710000)
	return unit.PMod(deg, 360) / 15
}

// GMST returns Greenwich mean sidereal time.
func GMST(in timescale.Instant) float64 {
	return wrap24(GMST0(in) + in.UTHours()*SolarToSidereal)
}

// GAST returns Greenwich apparent sidereal time: GMST corrected by the
// equation of the equinoxes evaluated in dynamical time.
func GAST(in timescale.Instant) float64 {
	return gast(GMST(in), nutation.Compute(in.TE()))
}

func gast(gmst float64, nut nutation.Result) float64 {
	return wrap24(gmst + nut.EquationOfEquinoxes()/3600)
}

// LMST returns local mean sidereal time at east longitude lon.
func LMST(in timescale.Instant, lon float64) float64 {
	return wrap24(GMST(in) + lon/15)
}

// LAST returns local apparent sidereal time at east longitude lon.
func LAST(in timescale.Instant, lon float64) float64 {
	return wrap24(GAST(in) + lon/15)
}

// At computes every sidereal time for the instant, evaluating the nutation
// series once.
func At(in timescale.Instant, lon float64) Time {
	g0 := GMST0(in)
	gm := wrap24(g0 + in.UTHours()*SolarToSidereal)
	ga := gast(gm, nutation.Compute(in.TE()))
	return Time{
		GMST0: g0,
		GMST:  gm,
		GAST:  ga,
		LMST:  wrap24(gm + lon/15),
		LAST:  wrap24(ga + lon/15),
	}
}

// ToUniversal inverts LMST: it returns the UT instant on date's calendar day
// at which local mean sidereal time at east longitude lon equals lmst.
//
// A sidereal day is 3m55.9s shorter than a solar day, so every sidereal time
// recurs in the last 3m56s of the UT day. ToUniversal always returns the
// earlier of the two solutions.
func ToUniversal(date time.Time, lmst, lon float64) (time.Time, error) {
	if math.IsNaN(lmst) || math.IsInf(lmst, 0) {
		return time.Time{}, fmt.Errorf("lmst %v: %w", lmst, ErrDomain)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return time.Time{}, fmt.Errorf("longitude %v: %w", lon, ErrDomain)
	}
	day := timescale.StartOfDay(date)
	in, err := timescale.NewInstant(day)
	if err != nil {
		return time.Time{}, err
	}
	gmst := wrap24(lmst - lon/15)
	d := wrap24(gmst - GMST0(in))
	// Rounding can leave d a hair below 24 h for 0h UT.
	if 24-d < roundoffHours {
		d = 0
	}
	ut := d / SolarToSidereal
	return day.Add(time.Duration(math.Round(ut * float64(time.Hour)))), nil
}

// roundoffHours is the sidereal interval below which a difference is
// treated as zero, about 3.6 µs.
const roundoffHours = 1e-9

func wrap24(h float64) float64 {
	h = unit.PMod(h, 24)
	// PMod can return exactly 24 for tiny negative inputs
	if h >= 24 {
		h = 0
	}
	return h
}
