package astro

import (
	"math"

	"github.com/litescript/ls-almanac/internal/timescale"
)

// Altitude returns the altitude of eq at loc in degrees.
func Altitude(in timescale.Instant, loc GeoLocation, eq Equatorial) (float64, error) {
	h, err := ToHorizontal(in, loc, eq, FromNorth)
	if err != nil {
		return 0, err
	}
	return h.Altitude, nil
}

// UpperCulmination returns the altitude of a fixed body on the meridian
// above the pole-facing horizon, in degrees.
func UpperCulmination(loc GeoLocation, eq Equatorial) float64 {
	return 90 - math.Abs(loc.Latitude-eq.Dec)
}

// LowerCulmination returns the altitude of a fixed body on the meridian
// below the pole. It is positive for circumpolar bodies.
func LowerCulmination(loc GeoLocation, eq Equatorial) float64 {
	return math.Abs(loc.Latitude+eq.Dec) - 90
}

// ElevationTier categorizes altitude for display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

func (e ElevationTier) String() string {
	return [...]string{"down", "low", "medium", "high"}[e]
}

// GetElevationTier returns the tier for an altitude in degrees.
func GetElevationTier(elDeg float64) ElevationTier {
	switch {
	case elDeg <= 0:
		return ElevationNone
	case elDeg < 15:
		return ElevationLow
	case elDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
