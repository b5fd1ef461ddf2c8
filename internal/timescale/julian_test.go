package timescale

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		withTime bool
		expected float64
	}{
		{
			name:     "J2000 epoch",
			time:     time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			withTime: true,
			expected: 2451545.0,
		},
		{
			name:     "Unix epoch",
			time:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			withTime: true,
			expected: 2440587.5,
		},
		{
			name:     "Sputnik launch (Meeus 7.a)",
			time:     time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC),
			withTime: true,
			expected: 2436116.31,
		},
		{
			name:     "1987-04-10 19:21 UT (Meeus 12.b)",
			time:     time.Date(1987, 4, 10, 19, 21, 0, 0, time.UTC),
			withTime: true,
			expected: 2446896.30625,
		},
		{
			name:     "February shifts to previous year",
			time:     time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			withTime: true,
			expected: 2460369.5,
		},
		{
			name:     "time of day ignored",
			time:     time.Date(2000, 1, 1, 18, 30, 0, 0, time.UTC),
			withTime: false,
			expected: 2451544.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time, tt.withTime)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("JulianDate() = %.6f, want %.6f", got, tt.expected)
			}
		})
	}
}

func TestJulianDate_J2000Exact(t *testing.T) {
	got := JulianDate(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), true)
	if got != 2451545.0 {
		t.Errorf("JulianDate(J2000) = %v, want exactly 2451545.0", got)
	}
}

func TestJulianDate_SubSecond(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	withMicro := base.Add(500 * time.Millisecond)
	diff := JulianDate(withMicro, true) - JulianDate(base, true)
	want := 0.5 / SecondsPerDay
	// Float64 resolution near JD 2.46e6 is about 5e-10 day.
	if math.Abs(diff-want) > 1e-9 {
		t.Errorf("half-second offset = %g days, want %g", diff, want)
	}
}

func TestJulianDate_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2000, 1, 1, 7, 0, 0, 0, loc)
	if got := JulianDate(local, true); got != 2451545.0 {
		t.Errorf("JulianDate(local) = %v, want 2451545.0", got)
	}
}

func TestJulianCentury(t *testing.T) {
	if got := JulianCentury(J2000); got != 0 {
		t.Errorf("JulianCentury(J2000) = %v, want 0", got)
	}
	if got := JulianCentury(J2000 + DaysPerCentury); got != 1 {
		t.Errorf("JulianCentury(J2000+36525) = %v, want 1", got)
	}
	// Meeus 22.a
	got := JulianCentury(2446895.5)
	if math.Abs(got-(-0.127296372348)) > 1e-12 {
		t.Errorf("JulianCentury(2446895.5) = %.12f, want -0.127296372348", got)
	}
}

func TestJDToTime_RoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1957, 10, 4, 19, 26, 24, 0, time.UTC),
		time.Date(2031, 7, 19, 3, 14, 15, 926000000, time.UTC),
		time.Date(1850, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	for _, tm := range times {
		got := JDToTime(JulianDate(tm, true))
		if d := got.Sub(tm); d < -time.Millisecond || d > time.Millisecond {
			t.Errorf("JDToTime(JulianDate(%v)) = %v (off by %v)", tm, got, d)
		}
	}
}

func TestDecimalYear(t *testing.T) {
	got := DecimalYear(time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC))
	if math.Abs(got-(2000+0.5/12)) > 1e-12 {
		t.Errorf("DecimalYear(Jan 2000) = %v", got)
	}
	got = DecimalYear(time.Date(1990, 12, 1, 0, 0, 0, 0, time.UTC))
	if math.Abs(got-(1990+11.5/12)) > 1e-12 {
		t.Errorf("DecimalYear(Dec 1990) = %v", got)
	}
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2024, 3, 20, 17, 4, 5, 6, time.UTC))
	want := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}

func TestNewInstant(t *testing.T) {
	in, err := NewInstant(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewInstant: %v", err)
	}
	if in.JD() != J2000 {
		t.Errorf("JD = %v, want %v", in.JD(), J2000)
	}
	if in.T() != 0 {
		t.Errorf("T = %v, want 0", in.T())
	}
	if in.JD0() != 2451544.5 {
		t.Errorf("JD0 = %v, want 2451544.5", in.JD0())
	}
	if math.Abs(in.UTHours()-12) > 1e-12 {
		t.Errorf("UTHours = %v, want 12", in.UTHours())
	}
	if dt := in.DeltaT(); dt < 63 || dt > 65 {
		t.Errorf("DeltaT = %v, want ~63.9", dt)
	}
	wantJDE := J2000 + in.DeltaT()/SecondsPerDay
	if math.Abs(in.JDE()-wantJDE) > 1e-12 {
		t.Errorf("JDE = %v, want %v", in.JDE(), wantJDE)
	}

	next, err := in.Add(24 * time.Hour)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if math.Abs(next.JD()-in.JD()-1) > 1e-9 {
		t.Errorf("Add(24h) advanced JD by %v", next.JD()-in.JD())
	}
}

func TestNewInstant_OutOfRange(t *testing.T) {
	_, err := NewInstant(time.Date(3500, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrDeltaTRange) {
		t.Errorf("NewInstant(3500) error = %v, want ErrDeltaTRange", err)
	}
}
