package photometry

import (
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/timescale"
)

func mustInstant(t *testing.T, tm time.Time) timescale.Instant {
	t.Helper()
	in, err := timescale.NewInstant(tm)
	if err != nil {
		t.Fatalf("NewInstant(%v): %v", tm, err)
	}
	return in
}

// Meeus, example 48.a: 1992 April 12.0 TD.
func TestMoonPhase_Example48a(t *testing.T) {
	td := time.Date(1992, 4, 12, 0, 0, 0, 0, time.UTC)
	in := mustInstant(t, td)
	in = mustInstant(t, td.Add(-time.Duration(in.DeltaT()*float64(time.Second))))

	p := MoonPhase(in)
	if math.Abs(p.PhaseAngle-68.88) > 0.01 {
		t.Errorf("i = %.3f°, want 68.88°", p.PhaseAngle)
	}
	if math.Abs(p.Illuminated-0.6801) > 0.0005 {
		t.Errorf("k = %.4f, want 0.6801", p.Illuminated)
	}
	if !p.Waxing || p.Name != "Waxing Gibbous" {
		t.Errorf("waxing=%v name=%q", p.Waxing, p.Name)
	}
}

func TestMoonPhase_Lunation(t *testing.T) {
	tests := []struct {
		name   string
		time   time.Time
		phase  string
		waxing bool
		kMin   float64
		kMax   float64
	}{
		{"full moon", time.Date(2024, 9, 18, 2, 34, 0, 0, time.UTC), "Full Moon", false, 0.99, 1},
		{"new moon", time.Date(2024, 10, 2, 18, 49, 0, 0, time.UTC), "New Moon", true, 0, 0.01},
		{"first quarter", time.Date(2024, 10, 10, 18, 55, 0, 0, time.UTC), "First Quarter", true, 0.49, 0.51},
		{"last quarter", time.Date(2024, 10, 24, 8, 3, 0, 0, time.UTC), "Third Quarter", false, 0.49, 0.51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MoonPhase(mustInstant(t, tt.time))
			if p.Illuminated < tt.kMin || p.Illuminated > tt.kMax {
				t.Errorf("k = %.5f, want [%v, %v]", p.Illuminated, tt.kMin, tt.kMax)
			}
			if p.Name != tt.phase {
				t.Errorf("name = %q, want %q", p.Name, tt.phase)
			}
			// Full Moon sits on the waxing/waning boundary
			if tt.phase != "Full Moon" && p.Waxing != tt.waxing {
				t.Errorf("waxing = %v, want %v", p.Waxing, tt.waxing)
			}
		})
	}
}

func TestMoonPhase_AgeTracksElongation(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24*60; h += 7 {
		p := MoonPhase(mustInstant(t, start.Add(time.Duration(h)*time.Hour)))
		if p.AgeDays < 0 || p.AgeDays >= SynodicMonth {
			t.Fatalf("age %v out of range", p.AgeDays)
		}
		if p.PhaseAngle < 0 || p.PhaseAngle > 180 {
			t.Fatalf("phase angle %v out of range", p.PhaseAngle)
		}
		if math.Abs(p.Illuminated-IlluminatedFraction(p.PhaseAngle)) > 1e-12 {
			t.Fatal("illuminated fraction disagrees with phase angle")
		}
		if p.Waxing != (p.AgeDays < SynodicMonth/2) {
			t.Fatalf("waxing=%v at age %.2f d", p.Waxing, p.AgeDays)
		}
	}
}
