package photometry

import (
	"math"
	"strings"
	"time"
)

// Feature is a named surface or atmospheric marking at a fixed
// planetographic position in one longitude system.
type Feature struct {
	Name      string
	Body      Planet
	Longitude float64 // west, degrees
	Latitude  float64 // degrees
	System    RotationModel
}

// Visibility grades how well a feature presents to the observer.
type Visibility int

const (
	VisibilityNo Visibility = iota
	VisibilityEdge
	VisibilityPossible
	VisibilityBest
)

func (v Visibility) String() string {
	switch v {
	case VisibilityBest:
		return "Best"
	case VisibilityPossible:
		return "Possible"
	case VisibilityEdge:
		return "Edge"
	default:
		return "No"
	}
}

// Hour-angle limits, in degrees from the central meridian.
const (
	bestLimit     = 30
	possibleLimit = 60
	edgeLimit     = 90
)

// Classify grades a feature from its hour angle h from the central meridian
// and its angular distance from the sub-Earth point, both in degrees.
func Classify(h, diskAngle float64) Visibility {
	if diskAngle > 90 {
		return VisibilityNo
	}
	switch a := math.Abs(h); {
	case a <= bestLimit:
		return VisibilityBest
	case a <= possibleLimit:
		return VisibilityPossible
	case a <= edgeLimit:
		return VisibilityEdge
	default:
		return VisibilityNo
	}
}

// FeatureView is a feature's presentation at one instant.
type FeatureView struct {
	Feature
	// HourAngle is measured from the central meridian, (-180, 180];
	// negative before transit.
	HourAngle float64
	// DiskAngle is the angle between the feature and the sub-Earth point.
	DiskAngle       float64
	Visibility      Visibility
	NextTransit     time.Time
	PreviousTransit time.Time
}

// View evaluates f against a physical ephemeris computed at time at with
// f.System.
func View(f Feature, pe PhysicalEphemeris, at time.Time) FeatureView {
	h := wrap180(pe.Omega - f.Longitude)

	sDE, cDE := math.Sincos(rad(pe.DE))
	sLat, cLat := math.Sincos(rad(f.Latitude))
	disk := deg(math.Acos(clampUnit(sDE*sLat + cDE*cLat*math.Cos(rad(h)))))

	next := NextTransit(f, pe.Omega, at)
	return FeatureView{
		Feature:         f,
		HourAngle:       h,
		DiskAngle:       disk,
		Visibility:      Classify(h, disk),
		NextTransit:     next,
		PreviousTransit: next.Add(-f.System.Period()),
	}
}

// NextTransit returns the first instant at or after at when f crosses the
// central meridian, given the central meridian longitude omega at that time.
func NextTransit(f Feature, omega float64, at time.Time) time.Time {
	days := wrap360(f.Longitude-omega) / f.System.WRate
	return at.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// PreviousTransit returns the last transit strictly before at.
func PreviousTransit(f Feature, omega float64, at time.Time) time.Time {
	next := NextTransit(f, omega, at)
	if next.Equal(at) {
		return at.Add(-f.System.Period())
	}
	return next.Add(-f.System.Period())
}

// Features returns the catalogued features of p.
func Features(p Planet) []Feature {
	var out []Feature
	for _, f := range featureCatalog {
		if f.Body == p {
			out = append(out, f)
		}
	}
	return out
}

// LookupFeature finds a catalogued feature by name, ignoring case.
func LookupFeature(name string) (Feature, bool) {
	for _, f := range featureCatalog {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Feature{}, false
}

// Drifting Jovian features are placed at their 2025 System II longitudes.
var featureCatalog = [...]Feature{
	{"Great Red Spot", Jupiter, 60, -22.5, JupiterSystemII},
	{"Oval BA", Jupiter, 330, -33, JupiterSystemII},
	{"Equatorial Zone", Jupiter, 0, 0, JupiterSystemI},

	{"Syrtis Major", Mars, 290.5, 8.4, MarsIAU},
	{"Hellas Planitia", Mars, 289.5, -42.4, MarsIAU},
	{"Olympus Mons", Mars, 133.8, 18.65, MarsIAU},
	{"Valles Marineris", Mars, 59.2, -13.9, MarsIAU},
	{"Solis Lacus", Mars, 85, -26, MarsIAU},
	{"Acidalia Planitia", Mars, 22, 46.7, MarsIAU},
	{"Utopia Planitia", Mars, 242.5, 46.7, MarsIAU},
	{"Elysium Mons", Mars, 213, 25, MarsIAU},
	{"Meridiani Planum", Mars, 0, -2, MarsIAU},
}
