package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/riseset"
)

// errWriter records the first write error so the report writers can
// format freely and check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// WriteReport writes a plain-text observation report.
func WriteReport(w io.Writer, r almanac.Report) error {
	ew := &errWriter{w: w}
	ew.printf("%s (%s) from %s at %s UT\n", r.Target.Name, r.Target.Kind, r.Site, r.Time.UTC().Format("2006-01-02 15:04:05"))
	ew.printf("  RA %s  Dec %s  [%s]\n", FormatRA(r.Position.Apparent.RA), FormatDec(r.Position.Apparent.Dec), r.Position.Source)
	ew.printf("  %s  HA %+.2f°  %s\n", FormatAltAz(r.Horizontal), r.HourAngle, r.Elevation)
	if r.Airmass > 0 {
		ew.printf("  airmass %.2f\n", r.Airmass)
	}
	ew.printf("  LAST %s  GAST %s\n", FormatHours(r.Sidereal.LAST), FormatHours(r.Sidereal.GAST))
	if r.Position.Delta > 0 {
		ew.printf("  distance %s\n", FormatDistance(r.Target.Kind, r.Position.Delta))
	}
	if r.Target.Name != "Sun" && r.Position.Delta > 0 {
		ew.printf("  sun separation %.1f° (%s)\n", r.SunSeparation, r.SunTier)
	}

	o := r.Observation
	ew.printf("  mag %s  diameter %s  phase %.1f°  illuminated %.1f%%\n",
		FormatMagnitude(o), FormatDiameter(o.AngularDiameter), o.PhaseAngle, o.Illuminated*100)

	if r.Rings != nil {
		ew.printf("  rings B %+.3f°  B' %+.3f°  P %.3f°  axes %.2f″ × %.2f″\n",
			r.Rings.B, r.Rings.BPrime, r.Rings.P, r.Rings.A, r.Rings.Minor)
	}
	if r.Physical != nil {
		ew.printf("  %s CM %.2f°  DE %+.2f°  DS %+.2f°\n", r.Physical.Model, r.Physical.Omega, r.Physical.DE, r.Physical.DS)
	}
	for _, f := range r.Features {
		ew.printf("    %-22s %-9s HA %+7.1f°  next transit %s\n",
			f.Name, f.Visibility, f.HourAngle, f.NextTransit.UTC().Format("01-02 15:04"))
	}
	if r.MoonPhase != nil {
		ew.printf("  %s %s, age %.1f d\n", phaseGlyph(r.MoonPhase.Elongation), r.MoonPhase.Name, r.MoonPhase.AgeDays)
	}
	for _, n := range r.Notes {
		ew.printf("  note: %s\n", n)
	}
	return ew.err
}

// WriteEvents writes a target's rise, transit and set for a day.
func WriteEvents(w io.Writer, ev almanac.Events) error {
	ew := &errWriter{w: w}
	ew.printf("%s at %s on %s (h0 %+.4f°)\n", ev.Target.Name, ev.Site, ev.Date.UTC().Format("2006-01-02"), ev.H0)
	writeResult(ew, ev.Result)
	return ew.err
}

func writeResult(ew *errWriter, res riseset.Result) {
	converged := res.State == riseset.Converged
	ew.printf("  %-12s %s\n", "state", FormatState(res.State))
	ew.printf("  %-12s %s\n", "rise", FormatEvent(res.Rise, converged))
	ew.printf("  %-12s %s  alt %+.2f°\n", "transit", FormatEvent(res.Transit, true), res.Transit.Altitude)
	ew.printf("  %-12s %s\n", "set", FormatEvent(res.Set, converged))
	if !res.WithinTolerance {
		ew.printf("  (not within tolerance after %d iterations)\n", res.Iterations)
	}
}

// WriteDay writes the Sun and Moon almanac.
func WriteDay(w io.Writer, d almanac.Day) error {
	ew := &errWriter{w: w}
	ew.printf("Almanac for %s, %s\n", d.Site, d.Date.UTC().Format("Monday 2 January 2006"))
	ew.printf("%s\n", strings.Repeat("─", 48))
	ew.printf("Sun\n")
	writeResult(ew, d.Sun.Result)
	for _, k := range []riseset.TwilightKind{riseset.Civil, riseset.Nautical, riseset.Astronomical} {
		res, ok := d.Twilight[k]
		if !ok {
			continue
		}
		converged := res.State == riseset.Converged
		ew.printf("  %-12s %s – %s  (%s)\n", k.String()+" tw.",
			FormatEvent(res.Rise, converged), FormatEvent(res.Set, converged), FormatState(res.State))
	}
	ew.printf("Moon\n")
	writeResult(ew, d.Moon.Result)
	ew.printf("  %s %s, %.0f%% illuminated, age %.1f d\n",
		phaseGlyph(d.Phase.Elongation), d.Phase.Name, d.Phase.Illuminated*100, d.Phase.AgeDays)
	return ew.err
}

// WriteSnapshot writes the tonight table used by the dashboard view in
// plain text.
func WriteSnapshot(w io.Writer, s Snapshot) error {
	ew := &errWriter{w: w}
	ew.printf("%s\n", s)
	ew.printf("%-10s %-13s %-11s %6s %6s %5s %5s %5s %5s\n",
		"Target", "RA", "Dec", "Alt", "Az", "Mag", "Rise", "Trans", "Set")
	for _, r := range s.Reports {
		ew.printf("%s\n", tonightRow(r, s))
	}
	if s.LastError != nil {
		ew.printf("errors: %v\n", s.LastError)
	}
	return ew.err
}

// tonightRow formats one report as a fixed-width table row.
func tonightRow(r almanac.Report, s Snapshot) string {
	rise, transit, set := "--:--", "--:--", "--:--"
	if ev, ok := s.EventsFor(r.Target.ID); ok {
		converged := ev.State == riseset.Converged
		rise = FormatEvent(ev.Rise, converged)
		transit = FormatEvent(ev.Transit, true)
		set = FormatEvent(ev.Set, converged)
	}
	return fmt.Sprintf("%-10s %-13s %-11s %+6.1f %6.1f %5s %5s %5s %5s",
		truncate(r.Target.Name, 10),
		FormatRA(r.Position.Apparent.RA),
		FormatDec(r.Position.Apparent.Dec),
		r.Horizontal.Altitude,
		r.Horizontal.Azimuth,
		FormatMagnitude(r.Observation),
		rise, transit, set,
	)
}

// WritePasses writes a pass plan, one line per pass.
func WritePasses(w io.Writer, plan almanac.PassPlan) error {
	ew := &errWriter{w: w}
	ew.printf("%s passes at %s, %s to %s UT\n", plan.Target.Name, plan.Site,
		plan.WindowStart.UTC().Format("2006-01-02"), plan.WindowEnd.UTC().Format("2006-01-02"))
	if len(plan.Passes) == 0 {
		ew.printf("  no passes above the horizon\n")
		return ew.err
	}
	for _, p := range plan.Passes {
		ew.printf("  %-6s %s  %s  %s  max %+5.1f°\n", p.Status,
			passTime(p.Rise.Time, p.HasRise), passTime(p.Transit.Time, p.HasTransit),
			passTime(p.Set.Time, p.HasSet), p.MaxAltitude)
	}
	return ew.err
}

func passTime(t time.Time, ok bool) string {
	if !ok {
		return "-----------"
	}
	return t.UTC().Format("01-02 15:04")
}
