package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/photometry"
	"github.com/litescript/ls-almanac/internal/riseset"
)

func TestWriteReport(t *testing.T) {
	r := testReport(t, "Saturn", 20, 140)
	r.Rings = &photometry.RingGeometry{B: 1.5, A: 38, Minor: 1}
	r.Notes = []string{"no heliocentric vectors"}
	r.Airmass = 2.9

	var buf bytes.Buffer
	if err := WriteReport(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Saturn (planet)", "Greenwich", "RA ", "airmass 2.90", "rings B +1.500°", "note: no heliocentric vectors", "mag -1.2"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteEvents(t *testing.T) {
	snap := testSnapshot(t)
	mars := snap.Reports[0].Target
	ev := snap.Events[mars.ID]

	var buf bytes.Buffer
	if err := WriteEvents(&buf, ev); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Mars at Greenwich", "rise         12:00", "transit      20:00", "set          04:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("events missing %q:\n%s", want, out)
		}
	}

	ev.Result = riseset.Result{State: riseset.NeverRises, Iterations: 5}
	buf.Reset()
	if err := WriteEvents(&buf, ev); err != nil {
		t.Fatal(err)
	}
	out = buf.String()
	if !strings.Contains(out, "never rises") || !strings.Contains(out, "rise         --:--") {
		t.Errorf("never-rises output:\n%s", out)
	}
}

func TestWriteDay(t *testing.T) {
	day := almanac.Day{
		Site:     testSite,
		Date:     testTime,
		Sun:      almanac.Events{Result: riseset.Result{State: riseset.Converged, WithinTolerance: true}},
		Moon:     almanac.Events{Result: riseset.Result{State: riseset.Converged, WithinTolerance: true}},
		Twilight: map[riseset.TwilightKind]riseset.Result{riseset.Civil: {State: riseset.Converged}},
		Phase:    photometry.LunarPhase{Elongation: 200, Illuminated: 0.97, Name: "Waning Gibbous", AgeDays: 16.4},
	}
	var buf bytes.Buffer
	if err := WriteDay(&buf, day); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Almanac for Greenwich", "Thursday 20 March 2025", "civil tw.", "Waning Gibbous, 97% illuminated"} {
		if !strings.Contains(out, want) {
			t.Errorf("day missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "nautical") {
		t.Errorf("missing twilight kinds should be skipped:\n%s", out)
	}
}

func TestWriteSnapshot(t *testing.T) {
	snap := testSnapshot(t)
	snap.LastError = errPartial

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, snap); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// summary, header, three rows, errors
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "Mars") || !strings.Contains(lines[2], "12:00") {
		t.Errorf("mars row = %q", lines[2])
	}
	if !strings.Contains(lines[3], "--:--") {
		t.Errorf("saturn row without events = %q", lines[3])
	}
	if !strings.Contains(lines[5], "Halley") {
		t.Errorf("error line = %q", lines[5])
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportPropagatesWriteError(t *testing.T) {
	if err := WriteReport(failingWriter{}, testReport(t, "Mars", 10, 10)); err == nil {
		t.Error("expected write error")
	}
}

func TestWritePasses(t *testing.T) {
	mars := testTarget(t, "Mars")
	day := testTime.Truncate(24 * time.Hour)
	plan := almanac.PassPlan{
		Target:      mars,
		Site:        testSite,
		WindowStart: day,
		WindowEnd:   day.AddDate(0, 0, 2),
		Passes: []almanac.Pass{
			{
				Transit: riseset.Event{Kind: riseset.Transit, Time: day.Add(2 * time.Hour)}, HasTransit: true,
				Set: riseset.Event{Kind: riseset.Set, Time: day.Add(4 * time.Hour)}, HasSet: true,
				MaxAltitude: 45, Status: almanac.PassPast,
			},
			{
				Rise: riseset.Event{Kind: riseset.Rise, Time: day.Add(12 * time.Hour)}, HasRise: true,
				MaxAltitude: 10, Status: almanac.PassNow,
			},
		},
	}

	var buf bytes.Buffer
	if err := WritePasses(&buf, plan); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Mars passes", "PAST", "NOW", "-----------", "03-20 04:00", "max +45.0°"} {
		if !strings.Contains(out, want) {
			t.Errorf("passes missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	plan.Passes = nil
	if err := WritePasses(&buf, plan); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "no passes") {
		t.Errorf("empty plan output:\n%s", buf.String())
	}
}
