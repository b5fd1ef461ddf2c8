package ephem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/photometry"
)

// FixedEntry is a time-independent position.
type FixedEntry struct {
	Position astro.Equatorial
	// Distances in AU, zero when unknown.
	Delta            float64
	SunDistance      float64
	EarthSunDistance float64
	// Helio is returned by Heliocentric when set.
	Helio *photometry.HelioPosition
}

// FixedProvider serves positions that do not change with time: catalog
// stars, and any target registered with Set.
type FixedProvider struct {
	mu      sync.RWMutex
	entries map[string]FixedEntry
}

// NewFixedProvider returns a provider holding every star in catalog.
func NewFixedProvider(catalog astro.StarCatalog) *FixedProvider {
	p := &FixedProvider{entries: make(map[string]FixedEntry, len(catalog.Stars))}
	for _, s := range catalog.Stars {
		p.entries[normalizeName(s.Name)] = FixedEntry{Position: s.Position}
	}
	return p
}

// Set registers or replaces the entry for a target name.
func (p *FixedProvider) Set(name string, e FixedEntry) {
	p.mu.Lock()
	p.entries[normalizeName(name)] = e
	p.mu.Unlock()
}

func (p *FixedProvider) get(target Target) (FixedEntry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[normalizeName(target.Name)]
	return e, ok
}

// Name implements Provider.
func (*FixedProvider) Name() string { return "Fixed" }

// Available implements Provider.
func (p *FixedProvider) Available(target Target) bool {
	_, ok := p.get(target)
	return ok
}

// Position implements Provider.
func (p *FixedProvider) Position(_ context.Context, target Target, t time.Time) (Position, error) {
	e, ok := p.get(target)
	if !ok {
		return Position{}, fmt.Errorf("fixed %s: %w", target.Name, ErrUnknownTarget)
	}
	return Position{
		Target:           target,
		Time:             t.UTC(),
		Apparent:         e.Position,
		Delta:            e.Delta,
		SunDistance:      e.SunDistance,
		EarthSunDistance: e.EarthSunDistance,
		Source:           p.Name(),
	}, nil
}

// Heliocentric implements Provider.
func (p *FixedProvider) Heliocentric(_ context.Context, target Target, _ time.Time) (photometry.HelioPosition, error) {
	e, ok := p.get(target)
	if !ok {
		return photometry.HelioPosition{}, fmt.Errorf("fixed %s: %w", target.Name, ErrUnknownTarget)
	}
	if e.Helio == nil {
		return photometry.HelioPosition{}, fmt.Errorf("fixed %s heliocentric: %w", target.Name, ErrNoData)
	}
	return *e.Helio, nil
}
