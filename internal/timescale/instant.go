package timescale

import (
	"fmt"
	"time"
)

// Instant is a UTC timestamp together with the derived quantities every
// downstream computation needs. Instants are immutable; construct them with
// NewInstant.
type Instant struct {
	utc    time.Time
	jd     float64
	deltaT float64
}

// NewInstant builds an Instant for t. It fails only when t lies outside the
// range supported by the ΔT model.
func NewInstant(t time.Time) (Instant, error) {
	t = t.UTC()
	dt, err := EstimateDeltaT(DecimalYear(t))
	if err != nil {
		return Instant{}, fmt.Errorf("instant %s: %w", t.Format(time.RFC3339), err)
	}
	return Instant{
		utc:    t,
		jd:     JulianDate(t, true),
		deltaT: dt,
	}, nil
}

// Time returns the UTC timestamp.
func (in Instant) Time() time.Time { return in.utc }

// JD returns the Julian Date (UT).
func (in Instant) JD() float64 { return in.jd }

// JD0 returns the Julian Date of 0h UT on the same calendar date.
func (in Instant) JD0() float64 { return JulianDate(in.utc, false) }

// T returns Julian centuries of UT from J2000.0.
func (in Instant) T() float64 { return JulianCentury(in.jd) }

// DeltaT returns the estimated TT − UT in seconds.
func (in Instant) DeltaT() float64 { return in.deltaT }

// JDE returns the Julian Ephemeris Day (dynamical time).
func (in Instant) JDE() float64 { return in.jd + in.deltaT/SecondsPerDay }

// TE returns Julian centuries of dynamical time from J2000.0. Nutation and
// the other series in the engine are evaluated at TE.
func (in Instant) TE() float64 { return JulianCentury(in.JDE()) }

// UTHours returns the time of day in hours.
func (in Instant) UTHours() float64 { return dayFraction(in.utc) * 24 }

// Add returns the instant d later.
func (in Instant) Add(d time.Duration) (Instant, error) {
	return NewInstant(in.utc.Add(d))
}

// String formats the instant as RFC 3339 with its Julian Date.
func (in Instant) String() string {
	return fmt.Sprintf("%s (JD %.5f)", in.utc.Format(time.RFC3339), in.jd)
}
