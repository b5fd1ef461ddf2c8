package ephem

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/photometry"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"meeus", ModeMeeus, false},
		{"offline", ModeMeeus, false},
		{"horizons", ModeHorizons, false},
		{"AUTO", ModeAuto, false},
		{"", ModeMeeus, false}, // default
		{"dsn", ModeMeeus, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMode(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMode(%q) err = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseMode(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{ModeMeeus, "meeus"},
		{ModeHorizons, "horizons"},
		{ModeAuto, "auto"},
		{Mode(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.mode.String(); got != tc.expected {
				t.Errorf("Mode(%d).String() = %q, want %q", tc.mode, got, tc.expected)
			}
		})
	}
}

// failingProvider claims every target and fails every request.
type failingProvider struct{ err error }

func (failingProvider) Name() string          { return "Failing" }
func (failingProvider) Available(Target) bool { return true }
func (f failingProvider) Position(context.Context, Target, time.Time) (Position, error) {
	return Position{}, f.err
}
func (f failingProvider) Heliocentric(context.Context, Target, time.Time) (photometry.HelioPosition, error) {
	return photometry.HelioPosition{}, f.err
}

func TestChainProvider_FallsBack(t *testing.T) {
	fixed := NewFixedProvider(astro.DefaultStarCatalog())
	var failures []string
	chain := NewChainProvider(func(p Provider, target Target, err error) {
		failures = append(failures, p.Name()+":"+target.Name)
	}, failingProvider{err: errors.New("offline")}, fixed)

	vega, err := Lookup("Vega", astro.DefaultStarCatalog())
	if err != nil {
		t.Fatal(err)
	}
	pos, err := chain.Position(context.Background(), vega, time.Now())
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if pos.Source != "Fixed" {
		t.Errorf("Source = %q, want Fixed", pos.Source)
	}
	if len(failures) != 1 || failures[0] != "Failing:Vega" {
		t.Errorf("failures = %v", failures)
	}
	if chain.Name() != "Failing+Fixed" {
		t.Errorf("Name() = %q", chain.Name())
	}
}

func TestChainProvider_AllFail(t *testing.T) {
	want := errors.New("down")
	chain := NewChainProvider(nil, failingProvider{err: want})
	mars, _ := Lookup("Mars", astro.StarCatalog{})
	if _, err := chain.Position(context.Background(), mars, time.Now()); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}

	empty := NewChainProvider(nil)
	if _, err := empty.Heliocentric(context.Background(), mars, time.Now()); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("empty chain err = %v, want ErrUnknownTarget", err)
	}
	if empty.Available(mars) {
		t.Error("empty chain reports Mars available")
	}
}

func TestChainProvider_StopsOnCancel(t *testing.T) {
	calls := 0
	chain := NewChainProvider(func(Provider, Target, error) { calls++ },
		failingProvider{err: context.Canceled}, NewMeeusProvider())
	mars, _ := Lookup("Mars", astro.StarCatalog{})
	if _, err := chain.Position(context.Background(), mars, time.Now()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("onFail called %d times after cancellation", calls)
	}
}

func TestPositionGeometry(t *testing.T) {
	p := Position{Delta: 0.5, SunDistance: 1.4, EarthSunDistance: 0.99}
	g := p.Geometry()
	if g.EarthDistance != 0.5 || g.SunDistance != 1.4 || g.EarthSunDistance != 0.99 || g.Rings != nil {
		t.Errorf("Geometry() = %+v", g)
	}
}
