// Package timescale converts civil UTC timestamps into the uniform time
// scales used by the rest of the engine: Julian Date, Julian centuries from
// J2000.0 and an estimate of ΔT (TT − UT).
package timescale

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 TT).
	J2000 = 2451545.0

	// DaysPerCentury is the length of a Julian century in days.
	DaysPerCentury = 36525.0

	// SecondsPerDay is the number of SI seconds in a day.
	SecondsPerDay = 86400.0

	// UnixEpochJD is the Julian Date of 1970-01-01 00:00 UTC.
	UnixEpochJD = 2440587.5
)

// JulianDate returns the Julian Date of t using the Gregorian calendar
// algorithm from Meeus, Astronomical Algorithms ch. 7.
//
// When withTime is false the time of day is ignored and the result is the
// Julian Date of 0h UT on t's calendar date.
func JulianDate(t time.Time, withTime bool) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	// January and February count as months 13 and 14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + b - 1524.5

	if withTime {
		jd += dayFraction(t)
	}
	return jd
}

// dayFraction returns the elapsed fraction of t's UTC day.
func dayFraction(t time.Time) float64 {
	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return (h + min/60 + sec/3600) / 24
}

// JulianCentury returns the number of Julian centuries between jd and J2000.0.
func JulianCentury(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// JDToTime converts a Julian Date back to a UTC time, rounded to the
// microsecond.
func JDToTime(jd float64) time.Time {
	days := jd - UnixEpochJD
	whole := math.Floor(days)
	frac := (days - whole) * SecondsPerDay * float64(time.Second)
	t := time.Unix(int64(whole)*int64(SecondsPerDay), 0).UTC()
	return t.Add(time.Duration(frac)).Round(time.Microsecond)
}

// DecimalYear returns the year of t with the month expressed as a fraction,
// taking the middle of each month: y + (month − 0.5)/12. This is the time
// argument of the ΔT polynomials.
func DecimalYear(t time.Time) float64 {
	t = t.UTC()
	return float64(t.Year()) + (float64(t.Month())-0.5)/12
}

// StartOfDay truncates t to 0h UTC on its calendar date.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
