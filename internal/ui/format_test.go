package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/riseset"
)

func TestFormatRA(t *testing.T) {
	got := FormatRA(6.75)
	for _, want := range []string{"6ʰ", "45ᵐ", "ˢ"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatRA(6.75) = %q, missing %q", got, want)
		}
	}
}

func TestFormatZeroLeadingSegments(t *testing.T) {
	tests := []struct {
		name, got, prefix string
	}{
		{"RA 0.5h", FormatRA(0.5), "0ʰ30ᵐ"},
		{"RA 0.01h", FormatRA(0.01), "0ʰ0ᵐ"},
		{"hours 0.2", FormatHours(0.2), "0ʰ12ᵐ"},
	}
	for _, tt := range tests {
		if !strings.HasPrefix(tt.got, tt.prefix) {
			t.Errorf("%s = %q, want prefix %q", tt.name, tt.got, tt.prefix)
		}
	}
	if got := padUnits("-30′0″", degreeUnits); got != "-0°30′0″" {
		t.Errorf("padUnits = %q", got)
	}
	if got := padUnits("5ʰ0ᵐ0ˢ", hourUnits); got != "5ʰ0ᵐ0ˢ" {
		t.Errorf("padUnits changed a full value: %q", got)
	}
}

func TestFormatDec(t *testing.T) {
	tests := []struct {
		deg    float64
		prefix string
		parts  []string
	}{
		{23.5, "+", []string{"23°", "30′"}},
		{-16.75, "-", []string{"16°", "45′"}},
		{0, "+", []string{"+0°0′", "″"}},
		{0.5, "+", []string{"+0°30′"}},
		{-0.25, "-", []string{"-0°15′"}},
		{-0.001, "-", []string{"-0°0′"}},
	}
	for _, tt := range tests {
		got := FormatDec(tt.deg)
		if !strings.HasPrefix(got, tt.prefix) {
			t.Errorf("FormatDec(%v) = %q, want prefix %q", tt.deg, got, tt.prefix)
		}
		for _, p := range tt.parts {
			if !strings.Contains(got, p) {
				t.Errorf("FormatDec(%v) = %q, missing %q", tt.deg, got, p)
			}
		}
	}
}

func TestFormatEvent(t *testing.T) {
	ev := riseset.Event{Time: time.Date(2025, 3, 20, 6, 4, 50, 0, time.UTC)}
	if got := FormatEvent(ev, true); got != "06:04" {
		t.Errorf("FormatEvent = %q, want 06:04", got)
	}
	if got := FormatEvent(ev, false); got != "--:--" {
		t.Errorf("FormatEvent(not ok) = %q", got)
	}
	if got := FormatEvent(riseset.Event{}, true); got != "--:--" {
		t.Errorf("FormatEvent(zero) = %q", got)
	}
}

func TestFormatState(t *testing.T) {
	tests := map[riseset.State]string{
		riseset.NeverRises:  "never rises",
		riseset.AlwaysAbove: "circumpolar",
		riseset.Converged:   "rises/sets",
	}
	for s, want := range tests {
		if got := FormatState(s); got != want {
			t.Errorf("FormatState(%v) = %q, want %q", s, got, want)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(ephem.KindMoon, 0.00257); !strings.HasSuffix(got, " km") {
		t.Errorf("moon distance = %q, want km", got)
	}
	got := FormatDistance(ephem.KindPlanet, 1.0)
	if !strings.HasPrefix(got, "1.0000 AU") || !strings.Contains(got, "8m19s") {
		t.Errorf("planet distance = %q", got)
	}
	if got := FormatDistance(ephem.KindStar, 0); got != "-" {
		t.Errorf("star distance = %q", got)
	}
}

func TestFormatMagnitudeAndDiameter(t *testing.T) {
	if got := FormatMagnitude(photometry.Observation{Magnitude: -4.43, HasMagnitude: true}); got != "-4.4" {
		t.Errorf("FormatMagnitude = %q", got)
	}
	if got := FormatMagnitude(photometry.Observation{}); got != "-" {
		t.Errorf("FormatMagnitude(none) = %q", got)
	}
	if got := FormatDiameter(1890); got != "31.5′" {
		t.Errorf("FormatDiameter(1890) = %q", got)
	}
	if got := FormatDiameter(16.2); got != "16.2″" {
		t.Errorf("FormatDiameter(16.2) = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "now"},
		{45 * time.Second, "45s"},
		{12 * time.Minute, "12m"},
		{3 * time.Hour, "3h"},
		{3*time.Hour + 20*time.Minute, "3h 20m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPhaseGlyph(t *testing.T) {
	tests := []struct {
		elong float64
		want  string
	}{
		{0, "🌑"}, {10, "🌑"}, {90, "🌓"}, {180, "🌕"}, {270, "🌗"}, {350, "🌑"},
	}
	for _, tt := range tests {
		if got := phaseGlyph(tt.elong); got != tt.want {
			t.Errorf("phaseGlyph(%v) = %q, want %q", tt.elong, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Betelgeuse", 6); got != "Bet..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Mars", 10); got != "Mars" {
		t.Errorf("truncate = %q", got)
	}
}
