package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/photometry"
)

// OrbitBody is a heliocentric position for the orbit view.
type OrbitBody struct {
	Name  string
	Kind  ephem.Kind
	Helio photometry.HelioPosition
}

// Snapshot is everything the views render for one refresh.
type Snapshot struct {
	Site    astro.GeoLocation
	Time    time.Time
	Reports []almanac.Report
	Events  map[ephem.TargetID]almanac.Events
	Day     *almanac.Day
	Orbits  []OrbitBody

	LastError     error
	LastFetch     time.Time
	NextRefresh   time.Time
	FetchDuration time.Duration
}

// EventsFor returns the day's events for a target.
func (s Snapshot) EventsFor(id ephem.TargetID) (almanac.Events, bool) {
	ev, ok := s.Events[id]
	return ev, ok
}

// Loader computes snapshots from an almanac service.
type Loader struct {
	Service *almanac.Service
	Site    astro.GeoLocation
	Targets []ephem.Target
	Logger  *logging.Logger
}

// Load computes a snapshot at time at. Failures for individual targets are
// logged and reported in LastError while the rest of the snapshot is kept.
func (l Loader) Load(ctx context.Context, at time.Time) Snapshot {
	start := time.Now()
	log := l.Logger
	if log == nil {
		log = logging.Discard()
	}
	snap := Snapshot{
		Site:   l.Site,
		Time:   at,
		Events: make(map[ephem.TargetID]almanac.Events, len(l.Targets)),
	}

	reports, err := l.Service.ObserveAll(ctx, l.Site, l.Targets, at)
	snap.Reports = reports
	if err != nil {
		log.Warn("observe: %v", err)
		snap.LastError = err
	}

	date := at.UTC()
	for _, t := range l.Targets {
		if ctx.Err() != nil {
			snap.LastError = ctx.Err()
			break
		}
		ev, err := l.Service.DailyEvents(ctx, l.Site, t, date)
		if err != nil {
			log.Debug("events for %s: %v", t.Name, err)
			continue
		}
		snap.Events[t.ID] = ev
	}

	if day, err := l.Service.Almanac(ctx, l.Site, date); err != nil {
		log.Warn("almanac: %v", err)
		if snap.LastError == nil {
			snap.LastError = err
		}
	} else {
		snap.Day = &day
	}

	snap.Orbits = l.orbits(ctx, at, log)
	snap.LastFetch = time.Now()
	snap.FetchDuration = snap.LastFetch.Sub(start)
	return snap
}

// orbits collects heliocentric positions of the Earth and every planet,
// asteroid and comet target the provider can place.
func (l Loader) orbits(ctx context.Context, at time.Time, log *logging.Logger) []OrbitBody {
	p := l.Service.Provider()
	candidates := append([]ephem.Target{ephem.EarthTarget}, l.Targets...)
	var out []OrbitBody
	for _, t := range candidates {
		switch t.Kind {
		case ephem.KindPlanet, ephem.KindAsteroid, ephem.KindComet:
		default:
			continue
		}
		h, err := p.Heliocentric(ctx, t, at)
		if err != nil {
			log.Debug("heliocentric %s: %v", t.Name, err)
			continue
		}
		out = append(out, OrbitBody{Name: t.Name, Kind: t.Kind, Helio: h})
	}
	return out
}

// String summarises the snapshot for status lines.
func (s Snapshot) String() string {
	return fmt.Sprintf("%d targets at %s from %s", len(s.Reports), s.Time.UTC().Format(time.RFC3339), s.Site.Name)
}
