package riseset

import (
	"fmt"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
)

// BodyClass selects a standard altitude.
type BodyClass int

const (
	StarClass BodyClass = iota
	PlanetClass
	SunClass
	MoonClass
)

// Standard altitudes h₀ in degrees: the geometric altitude of the centre
// of the body at apparent rise or set, allowing for refraction and, for the
// Sun and Moon, semidiameter and parallax.
const (
	StarAltitude = -0.5667
	SunAltitude  = -0.8333
	MoonAltitude = 0.125
)

// StandardAltitude returns h₀ for a class of body.
func StandardAltitude(c BodyClass) float64 {
	switch c {
	case SunClass:
		return SunAltitude
	case MoonClass:
		return MoonAltitude
	default:
		return StarAltitude
	}
}

// MoonStandardAltitude returns h₀ for the Moon at horizontal parallax pi,
// in degrees. The MoonAltitude constant corresponds to the mean parallax.
func MoonStandardAltitude(pi float64) float64 {
	return 0.7275*pi + StarAltitude
}

// TwilightKind is a twilight depth.
type TwilightKind int

const (
	Civil TwilightKind = iota
	Nautical
	Astronomical
)

func (k TwilightKind) String() string {
	switch k {
	case Civil:
		return "civil"
	case Nautical:
		return "nautical"
	case Astronomical:
		return "astronomical"
	}
	return fmt.Sprintf("TwilightKind(%d)", int(k))
}

// Altitude returns the solar altitude that bounds the twilight.
func (k TwilightKind) Altitude() float64 {
	switch k {
	case Nautical:
		return -12
	case Astronomical:
		return -18
	default:
		return -6
	}
}

// Twilight finds when the Sun crosses the twilight altitude on date's UT
// day. The rise and set solutions are reported as TwilightBegin and
// TwilightEnd; a NeverRises state means the Sun stays deeper than the
// twilight altitude all day and AlwaysAbove means twilight never ends.
func (s Solver) Twilight(date time.Time, loc astro.GeoLocation, sun [3]astro.Equatorial, kind TwilightKind) (Result, error) {
	if kind < Civil || kind > Astronomical {
		return Result{}, fmt.Errorf("twilight %v: %w", kind, astro.ErrDomain)
	}
	res, err := s.Solve(date, loc, sun, kind.Altitude())
	if err != nil {
		return res, err
	}
	res.Rise.Kind = TwilightBegin
	res.Set.Kind = TwilightEnd
	return res, nil
}
