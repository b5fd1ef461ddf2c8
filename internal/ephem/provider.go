// Package ephem provides positions of observable targets from offline
// theories, fixed catalogs or JPL Horizons.
package ephem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/photometry"
)

var (
	// ErrUnknownTarget is returned for a target a provider cannot serve.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrNoData is returned when a source has no usable data for a request.
	ErrNoData = errors.New("no ephemeris data")
)

// Position is the apparent geocentric place of a target.
type Position struct {
	Target Target
	Time   time.Time
	// Apparent is referred to the true equator and equinox of date.
	Apparent astro.Equatorial
	// Distances in AU: Earth-target (Δ), Sun-target (r) and Earth-Sun (R).
	// All three are zero for stars.
	Delta            float64
	SunDistance      float64
	EarthSunDistance float64
	Source           string
}

// Geometry returns the photometric geometry of the position.
func (p Position) Geometry() photometry.Geometry {
	return photometry.Geometry{
		SunDistance:      p.SunDistance,
		EarthDistance:    p.Delta,
		EarthSunDistance: p.EarthSunDistance,
	}
}

// Provider defines the interface for ephemeris data sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Position returns the apparent geocentric position of a target.
	Position(ctx context.Context, target Target, t time.Time) (Position, error)

	// Heliocentric returns the heliocentric position of a target on the
	// ecliptic and equinox of date. NAIFEarth is accepted for the Earth.
	Heliocentric(ctx context.Context, target Target, t time.Time) (photometry.HelioPosition, error)

	// Available returns true if this provider can supply data for the target.
	Available(target Target) bool
}

// EarthTarget is the Earth, usable only with Heliocentric.
var EarthTarget = Target{Name: "Earth", ID: NAIFEarth, Kind: KindPlanet, Planet: -1}

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeMeeus    Mode = iota // offline theories only
	ModeHorizons             // JPL Horizons only
	ModeAuto                 // Horizons, falling back to offline theories
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMeeus:
		return "meeus"
	case ModeHorizons:
		return "horizons"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. An empty string selects ModeMeeus.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "meeus", "offline", "":
		return ModeMeeus, nil
	case "horizons":
		return ModeHorizons, nil
	case "auto":
		return ModeAuto, nil
	default:
		return ModeMeeus, fmt.Errorf("ephemeris mode %q: want meeus, horizons or auto", s)
	}
}

// ChainProvider asks each provider in turn and returns the first success.
type ChainProvider struct {
	providers []Provider
	onFail    func(p Provider, target Target, err error)
}

// NewChainProvider returns a provider that tries ps in order. onFail, if
// not nil, is called for every failed attempt.
func NewChainProvider(onFail func(p Provider, target Target, err error), ps ...Provider) *ChainProvider {
	return &ChainProvider{providers: ps, onFail: onFail}
}

// Name implements Provider.
func (c *ChainProvider) Name() string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}

// Available implements Provider.
func (c *ChainProvider) Available(target Target) bool {
	for _, p := range c.providers {
		if p.Available(target) {
			return true
		}
	}
	return false
}

// Position implements Provider.
func (c *ChainProvider) Position(ctx context.Context, target Target, t time.Time) (Position, error) {
	return chain(c, target, func(p Provider) (Position, error) {
		return p.Position(ctx, target, t)
	})
}

// Heliocentric implements Provider.
func (c *ChainProvider) Heliocentric(ctx context.Context, target Target, t time.Time) (photometry.HelioPosition, error) {
	return chain(c, target, func(p Provider) (photometry.HelioPosition, error) {
		return p.Heliocentric(ctx, target, t)
	})
}

func chain[T any](c *ChainProvider, target Target, fn func(Provider) (T, error)) (T, error) {
	var zero T
	err := fmt.Errorf("%s: %w", target.Name, ErrUnknownTarget)
	for _, p := range c.providers {
		if !p.Available(target) && target.ID != NAIFEarth {
			continue
		}
		v, perr := fn(p)
		if perr == nil {
			return v, nil
		}
		if errors.Is(perr, context.Canceled) || errors.Is(perr, context.DeadlineExceeded) {
			return zero, perr
		}
		if c.onFail != nil {
			c.onFail(p, target, perr)
		}
		err = perr
	}
	return zero, err
}
