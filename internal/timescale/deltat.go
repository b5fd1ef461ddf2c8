package timescale

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/base"
)

// Range of years for which EstimateDeltaT returns a value. The long-term
// parabola used at both ends is only quoted for this span.
const (
	MinDeltaTYear = -1999.0
	MaxDeltaTYear = 3000.0
)

// ErrDeltaTRange is returned for years outside [MinDeltaTYear, MaxDeltaTYear].
var ErrDeltaTRange = errors.New("timescale: year outside delta-T support")

// deltaTBranch is one segment of the piecewise ΔT model. The segment applies
// to years strictly below until.
type deltaTBranch struct {
	until float64
	eval  func(y float64) float64
}

// deltaTBranches are the Espenak & Meeus polynomial fits, ordered by year.
var deltaTBranches = [...]deltaTBranch{
	{-500, longTermDeltaT},
	{500, func(y float64) float64 {
		return base.Horner(y/100,
			10583.6, -1014.41, 33.78311, -5.952053, -0.1798452, 0.022174192, 0.0090316521)
	}},
	{1600, func(y float64) float64 {
		return base.Horner((y-1000)/100,
			1574.2, -556.01, 71.23472, 0.319781, -0.8503463, -0.005050998, 0.0083572073)
	}},
	{1700, func(y float64) float64 {
		return base.Horner(y-1600, 120, -0.9808, -0.01532, 1.0/7129)
	}},
	{1800, func(y float64) float64 {
		return base.Horner(y-1700, 8.83, 0.1603, -0.0059285, 0.00013336, -1.0/1174000)
	}},
	{1860, func(y float64) float64 {
		return base.Horner(y-1800,
			13.72, -0.332447, 0.0068612, 0.0041116, -0.00037436,
			0.0000121272, -0.0000001699, 0.000000000875)
	}},
	{1900, func(y float64) float64 {
		return base.Horner(y-1860, 7.62, 0.5737, -0.251754, 0.01680668, -0.0004473624, 1.0/233174)
	}},
	{1920, func(y float64) float64 {
		return base.Horner(y-1900, -2.79, 1.494119, -0.0598939, 0.0061966, -0.000197)
	}},
	{1941, func(y float64) float64 {
		return base.Horner(y-1920, 21.20, 0.84493, -0.076100, 0.0020936)
	}},
	{1961, func(y float64) float64 {
		return base.Horner(y-1950, 29.07, 0.407, -1.0/233, 1.0/2547)
	}},
	{1986, func(y float64) float64 {
		return base.Horner(y-1975, 45.45, 1.067, -1.0/260, -1.0/718)
	}},
	{2005, func(y float64) float64 {
		return base.Horner(y-2000,
			63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599)
	}},
	{2050, func(y float64) float64 {
		return base.Horner(y-2000, 62.92, 0.32217, 0.005589)
	}},
	{2150, func(y float64) float64 {
		return longTermDeltaT(y) - 0.5628*(2150-y)
	}},
	{math.Inf(1), longTermDeltaT},
}

// longTermDeltaT is the Morrison & Stephenson long-term parabola.
func longTermDeltaT(y float64) float64 {
	u := (y - 1820) / 100
	return -20 + 32*u*u
}

// EstimateDeltaT returns a smooth estimate of ΔT = TT − UT in seconds for a
// decimal year (see DecimalYear). The estimate is not a substitute for
// published leap-second or IERS data.
func EstimateDeltaT(year float64) (float64, error) {
	if math.IsNaN(year) || year < MinDeltaTYear || year > MaxDeltaTYear {
		return 0, fmt.Errorf("%w: %v", ErrDeltaTRange, year)
	}
	for _, b := range deltaTBranches {
		if year < b.until {
			return b.eval(year), nil
		}
	}
	// The final branch is unbounded so this is only reached if the table
	// above has been broken.
	return 0, fmt.Errorf("%w: no polynomial covers %v", ErrDeltaTRange, year)
}
