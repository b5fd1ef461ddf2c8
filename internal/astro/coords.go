// Package astro provides coordinate transformations and spherical geometry
// on the celestial sphere.
//
// Conventions: right ascension is in hours [0, 24), declination, latitude
// and altitude in degrees, longitude east-positive, and azimuth measured
// from north unless FromSouth is requested.
package astro

import (
	"errors"
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/sidereal"
	"github.com/litescript/ls-almanac/internal/timescale"
)

var (
	// ErrDomain is returned for coordinates outside their valid range.
	ErrDomain = errors.New("astro: coordinate out of domain")
	// ErrBelowHorizon is returned by quantities undefined below the horizon.
	ErrBelowHorizon = errors.New("astro: below horizon")
)

// GeoLocation is an observer position on the Earth.
type GeoLocation struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Elevation float64 // metres; carried, not used by the transforms
	Name      string
}

// Validate reports whether the location is a point on the globe.
func (l GeoLocation) Validate() error {
	if math.IsNaN(l.Latitude) || math.Abs(l.Latitude) > 90 {
		return fmt.Errorf("latitude %v: %w", l.Latitude, ErrDomain)
	}
	if math.IsNaN(l.Longitude) || math.Abs(l.Longitude) > 180 {
		return fmt.Errorf("longitude %v: %w", l.Longitude, ErrDomain)
	}
	return nil
}

func (l GeoLocation) String() string {
	ns, ew := 'N', 'E'
	if l.Latitude < 0 {
		ns = 'S'
	}
	if l.Longitude < 0 {
		ew = 'W'
	}
	s := fmt.Sprintf("%.4f°%c %.4f°%c", math.Abs(l.Latitude), ns, math.Abs(l.Longitude), ew)
	if l.Name != "" {
		s = l.Name + " (" + s + ")"
	}
	return s
}

// Equatorial is a position in right ascension and declination.
type Equatorial struct {
	RA  float64 // hours [0, 24)
	Dec float64 // degrees [-90, 90]
}

// EquatorialFromDegrees builds an Equatorial from RA in degrees, wrapping it
// into [0, 24) hours.
func EquatorialFromDegrees(raDeg, dec float64) Equatorial {
	return Equatorial{RA: wrapHours(raDeg / 15), Dec: dec}
}

// RADeg returns right ascension in degrees.
func (e Equatorial) RADeg() float64 { return e.RA * 15 }

// Validate reports whether RA is in [0, 24) and Dec in [-90, 90].
func (e Equatorial) Validate() error {
	if math.IsNaN(e.RA) || e.RA < 0 || e.RA >= 24 {
		return fmt.Errorf("right ascension %vh: %w", e.RA, ErrDomain)
	}
	if math.IsNaN(e.Dec) || math.Abs(e.Dec) > 90 {
		return fmt.Errorf("declination %v°: %w", e.Dec, ErrDomain)
	}
	return nil
}

// AzimuthReference selects the zero point of azimuth.
type AzimuthReference int

const (
	FromNorth AzimuthReference = iota // compass azimuth, 90° = east
	FromSouth                         // astronomical azimuth, 90° = west
)

func (r AzimuthReference) String() string {
	if r == FromSouth {
		return "south"
	}
	return "north"
}

// Horizontal is a position in the observer's horizon frame.
type Horizontal struct {
	Azimuth   float64 // degrees [0, 360)
	Altitude  float64 // degrees [-90, 90]
	Reference AzimuthReference
}

// ZenithDistance returns 90° minus the altitude.
func (h Horizontal) ZenithDistance() float64 { return 90 - h.Altitude }

// Airmass returns sec z, the plane-parallel air mass. It is undefined at and
// below the horizon.
func (h Horizontal) Airmass() (float64, error) {
	if h.Altitude <= 0 {
		return 0, fmt.Errorf("airmass at altitude %.3f°: %w", h.Altitude, ErrBelowHorizon)
	}
	return 1 / math.Sin(degToRad(h.Altitude)), nil
}

// HourAngle returns the local hour angle of eq in degrees (-180, 180],
// positive west of the meridian, using local apparent sidereal time.
func HourAngle(in timescale.Instant, loc GeoLocation, eq Equatorial) float64 {
	return wrap180((sidereal.LAST(in, loc.Longitude) - eq.RA) * 15)
}

// ToHorizontal converts eq to altitude and azimuth for an observer at loc.
func ToHorizontal(in timescale.Instant, loc GeoLocation, eq Equatorial, ref AzimuthReference) (Horizontal, error) {
	if err := loc.Validate(); err != nil {
		return Horizontal{}, err
	}
	if err := eq.Validate(); err != nil {
		return Horizontal{}, err
	}
	return HorizontalFromHourAngle(HourAngle(in, loc, eq), eq.Dec, loc.Latitude, ref), nil
}

// HorizontalFromHourAngle converts an hour angle and declination to the
// horizon frame at latitude lat. All angles are degrees; inputs are assumed
// valid.
func HorizontalFromHourAngle(h, dec, lat float64, ref AzimuthReference) Horizontal {
	H, d, phi := degToRad(h), degToRad(dec), degToRad(lat)
	sH, cH := math.Sincos(H)
	sd, cd := math.Sincos(d)
	sphi, cphi := math.Sincos(phi)

	alt := math.Asin(clamp(sphi*sd + cphi*cd*cH))
	// atan2(sin H, cos H sin φ − tan δ cos φ), scaled by cos δ so the poles
	// stay finite
	az := radToDeg(math.Atan2(sH*cd, cH*sphi*cd-sd*cphi))
	if ref == FromNorth {
		az += 180
	}
	return Horizontal{
		Azimuth:   wrap360(az),
		Altitude:  radToDeg(alt),
		Reference: ref,
	}
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// clamp limits a sine or cosine to [-1, 1] before an inverse trig call.
func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

func wrap360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

func wrap180(a float64) float64 {
	a = wrap360(a)
	if a > 180 {
		a -= 360
	}
	return a
}

func wrapHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	if h >= 24 {
		h = 0
	}
	return h
}
