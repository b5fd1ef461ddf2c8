// Package riseset finds the times of rise, transit and set of a body, and
// of the Sun's twilight boundaries, by interpolating three daily positions
// and refining the estimate iteratively.
package riseset

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/sidereal"
	"github.com/litescript/ls-almanac/internal/timescale"
	"github.com/soniakeys/unit"
)

// State is the solver's outcome for a body on a day.
type State int

const (
	Searching   State = iota // not yet solved
	Converged                // rise, transit and set are valid
	NeverRises               // the body stays below h₀ all day
	AlwaysAbove              // the body stays above h₀ all day
)

func (s State) String() string {
	switch s {
	case Converged:
		return "converged"
	case NeverRises:
		return "never rises"
	case AlwaysAbove:
		return "always above"
	default:
		return "searching"
	}
}

// EventKind labels an almanac event.
type EventKind int

const (
	Rise EventKind = iota
	Set
	Transit
	TwilightBegin
	TwilightEnd
)

func (k EventKind) String() string {
	return [...]string{"rise", "set", "transit", "twilight begins", "twilight ends"}[k]
}

// Event is one almanac event.
type Event struct {
	Kind EventKind
	Time time.Time
	// HourAngle is the local hour angle in degrees at the event; for rise
	// and set it is the hour-angle solution of the iteration.
	HourAngle float64
	Altitude  float64 // degrees, at the event
}

// Solver holds the iteration limits. The zero value is not usable; start
// from DefaultSolver.
type Solver struct {
	MaxIterations int
	// Tolerance is the convergence limit on the mean |Δm|, in days.
	Tolerance float64
}

// DefaultSolver returns a solver with 5 iterations and a 3 s tolerance.
func DefaultSolver() Solver {
	return Solver{MaxIterations: 5, Tolerance: 1.0 / 28800}
}

// Result is the solution for one body on one UT day.
type Result struct {
	State   State
	Transit Event
	// Rise and Set are zero unless State is Converged.
	Rise Event
	Set  Event

	Iterations int
	// WithinTolerance is false when the iteration limit was reached first;
	// the times are then the best estimate available.
	WithinTolerance bool
}

// Events returns the defined events in time order.
func (r Result) Events() []Event {
	evs := []Event{r.Transit}
	if r.State == Converged {
		evs = append(evs, r.Rise, r.Set)
	}
	// At most three entries
	for i := 1; i < len(evs); i++ {
		for j := i; j > 0 && evs[j].Time.Before(evs[j-1].Time); j-- {
			evs[j], evs[j-1] = evs[j-1], evs[j]
		}
	}
	return evs
}

// Solve finds the events on date's UT day for a body at the three positions
// samples, taken at 0h UT on the previous day, the day itself and the next
// day. h0 is the standard altitude in degrees.
func (s Solver) Solve(date time.Time, loc astro.GeoLocation, samples [3]astro.Equatorial, h0 float64) (Result, error) {
	if err := loc.Validate(); err != nil {
		return Result{}, err
	}
	for i, eq := range samples {
		if err := eq.Validate(); err != nil {
			return Result{}, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	if s.MaxIterations < 1 || !(s.Tolerance > 0) {
		return Result{}, fmt.Errorf("solver %+v: %w", s, astro.ErrDomain)
	}

	day := timescale.StartOfDay(date)
	in, err := timescale.NewInstant(day)
	if err != nil {
		return Result{}, err
	}
	p := problem{
		day:    day,
		theta0: sidereal.GAST(in) * 15,
		lon:    loc.Longitude,
		phi:    rad(loc.Latitude),
		h0:     h0,
		dt:     in.DeltaT() / timescale.SecondsPerDay,
		ra:     unwrapRA(samples),
		dec:    [3]float64{samples[0].Dec, samples[1].Dec, samples[2].Dec},
	}

	res := Result{State: Searching}
	sd, cd := math.Sincos(rad(p.dec[1]))
	cosH0 := (math.Sin(rad(h0)) - math.Sin(p.phi)*sd) / (math.Cos(p.phi) * cd)

	m0 := (p.ra[1] - p.lon - p.theta0) / 360
	var mr, ms float64
	switch {
	case cosH0 > 1:
		res.State = NeverRises
	case cosH0 < -1:
		res.State = AlwaysAbove
	default:
		H0 := deg(math.Acos(cosH0))
		mr = wrapDay(m0 - H0/360)
		ms = wrapDay(m0 + H0/360)
	}
	m0 = wrapDay(m0)
	rising := res.State == Searching

	for res.Iterations < s.MaxIterations {
		res.Iterations++
		dm0 := p.transitCorrection(m0)
		m0 += dm0
		sum, n := math.Abs(dm0), 1.0
		if rising {
			dmr := p.horizonCorrection(mr)
			dms := p.horizonCorrection(ms)
			mr += dmr
			ms += dms
			sum += math.Abs(dmr) + math.Abs(dms)
			n += 2
		}
		if sum/n < s.Tolerance {
			res.WithinTolerance = true
			break
		}
	}

	res.Transit = p.event(Transit, m0)
	if rising {
		res.State = Converged
		res.Rise = p.event(Rise, mr)
		res.Set = p.event(Set, ms)
	}
	return res, nil
}

// problem is the fixed data of one Solve call. Angles in degrees except phi.
type problem struct {
	day    time.Time
	theta0 float64 // apparent sidereal time at Greenwich at 0h UT
	lon    float64
	phi    float64 // latitude, radians
	h0     float64
	dt     float64 // ΔT in days
	ra     [3]float64
	dec    [3]float64
}

// at returns the local hour angle (-180, 180], declination and altitude of
// the body at day fraction m.
func (p *problem) at(m float64) (H, dec, alt float64) {
	theta := p.theta0 + 360.985647*m
	n := m + p.dt
	ra := interpolate(p.ra, n)
	dec = interpolate(p.dec, n)
	H = wrap180(theta + p.lon - ra)
	sd, cd := math.Sincos(rad(dec))
	alt = deg(math.Asin(clampUnit(math.Sin(p.phi)*sd + math.Cos(p.phi)*cd*math.Cos(rad(H)))))
	return H, dec, alt
}

func (p *problem) transitCorrection(m float64) float64 {
	H, _, _ := p.at(m)
	return -H / 360
}

func (p *problem) horizonCorrection(m float64) float64 {
	H, dec, alt := p.at(m)
	den := 360 * math.Cos(rad(dec)) * math.Cos(p.phi) * math.Sin(rad(H))
	if den == 0 {
		return 0
	}
	return (alt - p.h0) / den
}

func (p *problem) event(kind EventKind, m float64) Event {
	m = wrapDay(m)
	H, _, alt := p.at(m)
	return Event{
		Kind:      kind,
		Time:      p.day.Add(dayOffset(m)),
		HourAngle: H,
		Altitude:  alt,
	}
}

// dayOffset converts a day fraction in [0, 1) to a duration. A fraction
// that rounds up to a whole day stays on the same day.
func dayOffset(m float64) time.Duration {
	d := time.Duration(math.Round(m * 24 * float64(time.Hour)))
	return min(d, 24*time.Hour-time.Nanosecond)
}

// interpolate evaluates the three-point interpolation formula at n days
// from the middle sample.
func interpolate(y [3]float64, n float64) float64 {
	a := y[1] - y[0]
	b := y[2] - y[1]
	c := b - a
	return y[1] + n/2*(a+b+n*c)
}

// unwrapRA returns the sample right ascensions in degrees, made continuous
// across 0h around the middle sample.
func unwrapRA(s [3]astro.Equatorial) [3]float64 {
	mid := s[1].RADeg()
	out := [3]float64{s[0].RADeg(), mid, s[2].RADeg()}
	for _, i := range []int{0, 2} {
		out[i] = mid + wrap180(out[i]-mid)
	}
	return out
}

func rad(d float64) float64 { return d * math.Pi / 180 }

func deg(r float64) float64 { return r * 180 / math.Pi }

func clampUnit(x float64) float64 { return math.Max(-1, math.Min(1, x)) }

func wrapDay(m float64) float64 {
	m = unit.PMod(m, 1)
	if m >= 1 {
		m = 0
	}
	return m
}

func wrap180(a float64) float64 {
	a = unit.PMod(a, 360)
	if a > 180 {
		a -= 360
	}
	return a
}
