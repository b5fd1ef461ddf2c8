package ephem

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/photometry"
)

// TargetID is a NAIF SPICE ID for a solar-system body. Catalog stars have
// no ID.
type TargetID int

// Kind classifies a target.
type Kind int

const (
	KindSun Kind = iota
	KindMoon
	KindPlanet
	KindAsteroid
	KindComet
	KindStar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindMoon:
		return "moon"
	case KindPlanet:
		return "planet"
	case KindAsteroid:
		return "asteroid"
	case KindComet:
		return "comet"
	case KindStar:
		return "star"
	default:
		return "unknown"
	}
}

// Target describes something that can be observed.
type Target struct {
	Name     string
	ID       TargetID
	Kind     Kind
	Aliases  []string
	HorizCmd string // Horizons COMMAND when it differs from the NAIF ID

	Planet   photometry.Planet   // KindPlanet
	Asteroid photometry.Asteroid // KindAsteroid
	Comet    photometry.Comet    // KindComet
	Star     astro.Star          // KindStar
}

// Command returns the Horizons COMMAND value for the target.
func (t Target) Command() string {
	if t.HorizCmd != "" {
		return t.HorizCmd
	}
	return fmt.Sprintf("%d", t.ID)
}

// Body returns the photometric model of the target.
func (t Target) Body() photometry.Body {
	switch t.Kind {
	case KindSun:
		return photometry.Sun{}
	case KindMoon:
		return photometry.Moon{}
	case KindPlanet:
		return t.Planet
	case KindAsteroid:
		return t.Asteroid
	case KindComet:
		return t.Comet
	default:
		return photometry.Star{Designation: t.Star.Name, Magnitude: t.Star.Magnitude}
	}
}

func (t Target) String() string { return t.Name }

// NAIF SPICE IDs of the major bodies.
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
const (
	NAIFSun     TargetID = 10
	NAIFMoon    TargetID = 301
	NAIFMercury TargetID = 199
	NAIFVenus   TargetID = 299
	NAIFEarth   TargetID = 399
	NAIFMars    TargetID = 499
	NAIFJupiter TargetID = 599
	NAIFSaturn  TargetID = 699
	NAIFUranus  TargetID = 799
	NAIFNeptune TargetID = 899
	NAIFPluto   TargetID = 999

	NAIFCeres  TargetID = 2000001
	NAIFPallas TargetID = 2000002
	NAIFJuno   TargetID = 2000003
	NAIFVesta  TargetID = 2000004
	NAIFHalley TargetID = 1000036
	NAIFEncke  TargetID = 1000025
)

func planetTarget(p photometry.Planet, id TargetID, aliases ...string) Target {
	return Target{Name: p.Name(), ID: id, Kind: KindPlanet, Planet: p, Aliases: aliases}
}

// Targets is the canonical list of solar-system targets.
var Targets = []Target{
	{Name: "Sun", ID: NAIFSun, Kind: KindSun, Aliases: []string{"Sol"}},
	{Name: "Moon", ID: NAIFMoon, Kind: KindMoon, Aliases: []string{"Luna"}},

	planetTarget(photometry.Mercury, NAIFMercury),
	planetTarget(photometry.Venus, NAIFVenus),
	planetTarget(photometry.Mars, NAIFMars),
	planetTarget(photometry.Jupiter, NAIFJupiter, "Jove"),
	planetTarget(photometry.Saturn, NAIFSaturn),
	planetTarget(photometry.Uranus, NAIFUranus),
	planetTarget(photometry.Neptune, NAIFNeptune),
	planetTarget(photometry.Pluto, NAIFPluto),

	// Asteroids: H, G from the MPC orbit file.
	{Name: "Ceres", ID: NAIFCeres, Kind: KindAsteroid, HorizCmd: "1;", Aliases: []string{"1 Ceres"},
		Asteroid: photometry.Asteroid{Designation: "1 Ceres", H: 3.34, G: 0.12, DiameterKm: 939.4}},
	{Name: "Pallas", ID: NAIFPallas, Kind: KindAsteroid, HorizCmd: "2;", Aliases: []string{"2 Pallas"},
		Asteroid: photometry.Asteroid{Designation: "2 Pallas", H: 4.13, G: 0.11, DiameterKm: 512}},
	{Name: "Juno", ID: NAIFJuno, Kind: KindAsteroid, HorizCmd: "3;", Aliases: []string{"3 Juno"},
		Asteroid: photometry.Asteroid{Designation: "3 Juno", H: 5.33, G: 0.32, DiameterKm: 254}},
	{Name: "Vesta", ID: NAIFVesta, Kind: KindAsteroid, HorizCmd: "4;", Aliases: []string{"4 Vesta"},
		Asteroid: photometry.Asteroid{Designation: "4 Vesta", H: 3.20, G: 0.32, DiameterKm: 525.4}},

	// Comets: total-magnitude parameters M1, K1 as published by Horizons.
	{Name: "1P/Halley", ID: NAIFHalley, Kind: KindComet, HorizCmd: "DES=1P;CAP;NOFRAG", Aliases: []string{"Halley"},
		Comet: photometry.Comet{Designation: "1P/Halley", G: 5.5, K: 8.0}},
	{Name: "2P/Encke", ID: NAIFEncke, Kind: KindComet, HorizCmd: "DES=2P;CAP;NOFRAG", Aliases: []string{"Encke"},
		Comet: photometry.Comet{Designation: "2P/Encke", G: 11.5, K: 10.0}},
}

// TargetsByID maps NAIF IDs to targets for quick lookup.
var TargetsByID = func() map[TargetID]Target {
	m := make(map[TargetID]Target, len(Targets))
	for _, t := range Targets {
		m[t.ID] = t
	}
	return m
}()

// TargetsByName maps normalized names and aliases to targets.
var TargetsByName = func() map[string]Target {
	m := make(map[string]Target, len(Targets)*2)
	for _, t := range Targets {
		m[normalizeName(t.Name)] = t
		for _, alias := range t.Aliases {
			m[normalizeName(alias)] = t
		}
	}
	return m
}()

// normalizeName folds case and surrounding space for matching.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetTargetByID returns the target for a NAIF ID.
func GetTargetByID(id TargetID) (Target, bool) {
	t, ok := TargetsByID[id]
	return t, ok
}

// Lookup resolves a name to a target: first the solar-system table, then
// the star catalog.
func Lookup(name string, stars astro.StarCatalog) (Target, error) {
	if t, ok := TargetsByName[normalizeName(name)]; ok {
		return t, nil
	}
	if s, ok := stars.Lookup(strings.TrimSpace(name)); ok {
		return StarTarget(s), nil
	}
	return Target{}, fmt.Errorf("%q: %w", name, ErrUnknownTarget)
}

// StarTarget wraps a catalog star.
func StarTarget(s astro.Star) Target {
	return Target{Name: s.Name, Kind: KindStar, Star: s}
}
