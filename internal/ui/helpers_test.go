package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/riseset"
)

var (
	testSite = astro.GeoLocation{Name: "Greenwich", Latitude: 51.4779, Longitude: -0.0015}
	testTime = time.Date(2025, 3, 20, 21, 0, 0, 0, time.UTC)
)

func testTarget(t *testing.T, name string) ephem.Target {
	t.Helper()
	target, err := ephem.Lookup(name, astro.DefaultStarCatalog())
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return target
}

func testReport(t *testing.T, name string, alt, az float64) almanac.Report {
	t.Helper()
	target := testTarget(t, name)
	tier := astro.ElevationNone
	if alt > 0 {
		tier = astro.GetElevationTier(alt)
	}
	return almanac.Report{
		Target: target,
		Site:   testSite,
		Time:   testTime,
		Position: ephem.Position{
			Target:   target,
			Time:     testTime,
			Apparent: astro.Equatorial{RA: 6.75, Dec: 23.1},
			Delta:    1.2,
			Source:   "test",
		},
		Horizontal:    astro.Horizontal{Altitude: alt, Azimuth: az},
		Elevation:     tier,
		SunSeparation: 95,
		Observation:   photometry.Observation{Magnitude: -1.2, HasMagnitude: true, Illuminated: 0.9, AngularDiameter: 12},
	}
}

func testSnapshot(t *testing.T) Snapshot {
	t.Helper()
	mars := testReport(t, "Mars", 45, 120)
	saturn := testReport(t, "Saturn", -10, 270)
	moon := testReport(t, "Moon", 30, 200)
	moon.Position.Delta = 0.0025

	mid := testTime.Add(-9 * time.Hour)
	events := map[ephem.TargetID]almanac.Events{
		mars.Target.ID: {
			Target: mars.Target,
			Site:   testSite,
			Date:   testTime,
			Result: riseset.Result{
				State:           riseset.Converged,
				Rise:            riseset.Event{Kind: riseset.Rise, Time: mid},
				Transit:         riseset.Event{Kind: riseset.Transit, Time: mid.Add(8 * time.Hour), Altitude: 61},
				Set:             riseset.Event{Kind: riseset.Set, Time: mid.Add(16 * time.Hour)},
				WithinTolerance: true,
			},
		},
	}
	return Snapshot{
		Site:      testSite,
		Time:      testTime,
		Reports:   []almanac.Report{mars, saturn, moon},
		Events:    events,
		Orbits:    []OrbitBody{{Name: "Earth", Kind: ephem.KindPlanet, Helio: photometry.HelioPosition{L: 180, R: 1}}, {Name: "Mars", Kind: ephem.KindPlanet, Helio: photometry.HelioPosition{L: 60, R: 1.5}}},
		LastFetch: testTime,
	}
}

var errPartial = errors.New("observe Halley: no data")
