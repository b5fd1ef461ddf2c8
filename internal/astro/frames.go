package astro

import (
	"fmt"
	"math"
)

// AU is the astronomical unit in kilometres.
const AU = 149597870.7

// EarthRadiusKm is the Earth's equatorial radius.
const EarthRadiusKm = 6378.14

// lightSecondsPerAU is the one-way light time across 1 AU.
const lightSecondsPerAU = 499.004784

// Vec3 is a Cartesian vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Spherical builds a vector from longitude and latitude in degrees and a
// radius.
func Spherical(lon, lat, r float64) Vec3 {
	sl, cl := math.Sincos(degToRad(lon))
	sb, cb := math.Sincos(degToRad(lat))
	return Vec3{X: r * cb * cl, Y: r * cb * sl, Z: r * sb}
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction, or the zero vector.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s} }

func (v Vec3) Add(u Vec3) Vec3 { return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z} }

func (v Vec3) Sub(u Vec3) Vec3 { return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z} }

func (v Vec3) Dot(u Vec3) float64 { return v.X*u.X + v.Y*u.Y + v.Z*u.Z }

// Longitude returns the vector's longitude in degrees [0, 360).
func (v Vec3) Longitude() float64 {
	return wrap360(radToDeg(math.Atan2(v.Y, v.X)))
}

// Latitude returns the vector's latitude in degrees.
func (v Vec3) Latitude() float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return radToDeg(math.Asin(clamp(v.Z / r)))
}

// EclipticToEquatorial converts ecliptic longitude and latitude to RA/Dec
// for obliquity eps. All angles in degrees.
func EclipticToEquatorial(lon, lat, eps float64) Equatorial {
	sl, cl := math.Sincos(degToRad(lon))
	sb, cb := math.Sincos(degToRad(lat))
	se, ce := math.Sincos(degToRad(eps))
	ra := math.Atan2(sl*ce*cb-sb*se, cl*cb)
	dec := math.Asin(clamp(sb*ce + cb*se*sl))
	return Equatorial{RA: wrapHours(radToDeg(ra) / 15), Dec: radToDeg(dec)}
}

// EquatorialToEcliptic converts eq to ecliptic longitude and latitude in
// degrees for obliquity eps.
func EquatorialToEcliptic(eq Equatorial, eps float64) (lon, lat float64) {
	sa, ca := math.Sincos(degToRad(eq.RADeg()))
	sd, cd := math.Sincos(degToRad(eq.Dec))
	se, ce := math.Sincos(degToRad(eps))
	l := math.Atan2(sa*ce*cd+sd*se, ca*cd)
	b := math.Asin(clamp(sd*ce - cd*se*sa))
	return wrap360(radToDeg(l)), radToDeg(b)
}

// KmToAU converts kilometres to astronomical units.
func KmToAU(km float64) float64 { return km / AU }

// AUToKm converts astronomical units to kilometres.
func AUToKm(au float64) float64 { return au * AU }

// LightTimeFromAU returns the one-way light time in seconds for a distance
// in AU.
func LightTimeFromAU(au float64) float64 { return au * lightSecondsPerAU }

// FormatLightTime formats a light time in seconds as "8.3s", "8m19s" or
// "1h23m".
func FormatLightTime(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		s := int(seconds)
		return fmt.Sprintf("%dm%ds", s/60, s%60)
	default:
		s := int(seconds)
		return fmt.Sprintf("%dh%dm", s/3600, (s%3600)/60)
	}
}
