package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/riseset"
)

var (
	hourUnits   = [...]string{"ʰ", "ᵐ", "ˢ"}
	degreeUnits = [...]string{"°", "′", "″"}
)

// FormatRA renders right ascension in hours as hours, minutes and tenths
// of seconds.
func FormatRA(hours float64) string {
	return padUnits(fmt.Sprintf("%.1s", sexa.FmtRA(unit.RAFromHour(hours))), hourUnits)
}

// FormatDec renders a signed angle in degrees as +16°42′58″.
func FormatDec(deg float64) string {
	s := padUnits(fmt.Sprintf("%.0s", sexa.FmtAngle(unit.AngleFromDeg(deg))), degreeUnits)
	if !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s
}

// FormatHours renders a time of day or sidereal time in hours as 13ʰ10ᵐ46ˢ.
func FormatHours(h float64) string {
	return padUnits(fmt.Sprintf("%.0s", sexa.FmtTime(unit.TimeFromHour(h))), hourUnits)
}

// padUnits restores the zero leading segments the sexagesimal formatter
// suppresses, so 0.5° reads 0°30′0″ rather than 30′0″.
func padUnits(s string, units [3]string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	first := len(units)
	for i, u := range units {
		if strings.Contains(s, u) {
			first = i
			break
		}
	}
	var b strings.Builder
	b.WriteString(sign)
	for _, u := range units[:first] {
		b.WriteString("0" + u)
	}
	b.WriteString(s)
	return b.String()
}

// FormatEvent renders an event's UT clock time, or a dash when the event
// does not occur.
func FormatEvent(ev riseset.Event, ok bool) string {
	if !ok || ev.Time.IsZero() {
		return "--:--"
	}
	return ev.Time.UTC().Format("15:04")
}

// FormatState summarises a rise/set result in a few characters.
func FormatState(s riseset.State) string {
	switch s {
	case riseset.NeverRises:
		return "never rises"
	case riseset.AlwaysAbove:
		return "circumpolar"
	case riseset.Converged:
		return "rises/sets"
	default:
		return s.String()
	}
}

// FormatDistance renders an Earth distance; the Moon in kilometres, the
// rest in AU with light time.
func FormatDistance(kind ephem.Kind, au float64) string {
	switch {
	case au <= 0:
		return "-"
	case kind == ephem.KindMoon:
		return fmt.Sprintf("%.0f km", astro.AUToKm(au))
	default:
		return fmt.Sprintf("%.4f AU (%s)", au, astro.FormatLightTime(astro.LightTimeFromAU(au)))
	}
}

// FormatMagnitude renders a visual magnitude, or a dash when there is none.
func FormatMagnitude(o photometry.Observation) string {
	if !o.HasMagnitude {
		return "-"
	}
	return fmt.Sprintf("%+.1f", o.Magnitude)
}

// FormatDiameter renders an apparent diameter in arcseconds, switching to
// arcminutes for the Sun and Moon.
func FormatDiameter(arcsec float64) string {
	switch {
	case arcsec <= 0:
		return "-"
	case arcsec >= 600:
		return fmt.Sprintf("%.1f′", arcsec/60)
	default:
		return fmt.Sprintf("%.1f″", arcsec)
	}
}

// FormatAltAz renders a horizontal position.
func FormatAltAz(h astro.Horizontal) string {
	return fmt.Sprintf("alt %+5.1f°  az %5.1f°", h.Altitude, h.Azimuth)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "now"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// phaseGlyph picks a moon glyph for an elongation in degrees.
func phaseGlyph(elongation float64) string {
	glyphs := []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}
	i := int(math.Floor(math.Mod(elongation+22.5, 360) / 45))
	if i < 0 || i >= len(glyphs) {
		i = 0
	}
	return glyphs[i]
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
