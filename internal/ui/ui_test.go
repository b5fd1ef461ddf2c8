package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-almanac/internal/ephem"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func readyModel(t *testing.T) Model {
	t.Helper()
	m := New(nil, time.Minute)
	m.now = func() time.Time { return testTime }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next, _ = next.Update(DataUpdateMsg{Snapshot: testSnapshot(t)})
	return next.(Model)
}

func TestModelViewSwitching(t *testing.T) {
	m := readyModel(t)
	tests := []struct {
		key  string
		want ViewMode
	}{
		{"2", ViewBody},
		{"3", ViewSky},
		{"4", ViewOrbit},
		{"1", ViewTonight},
		{"tab", ViewBody},
		{"o", ViewOrbit},
		{"tab", ViewTonight},
	}
	for _, tt := range tests {
		next, _ := m.Update(key(tt.key))
		m = next.(Model)
		if m.viewMode != tt.want {
			t.Errorf("after %q view = %v, want %v", tt.key, m.viewMode, tt.want)
		}
	}
}

func TestModelRendersEveryView(t *testing.T) {
	m := readyModel(t)
	checks := map[ViewMode]string{
		ViewTonight: "Tonight at Greenwich",
		ViewBody:    "Target:",
		ViewSky:     "Sky View",
		ViewOrbit:   "bodies",
	}
	for mode, want := range checks {
		m.viewMode = mode
		out := m.View()
		if !strings.Contains(out, want) {
			t.Errorf("view %v missing %q", mode, want)
		}
		if !strings.Contains(out, "2025-03-20 21:00 UT") {
			t.Errorf("view %v missing clock line", mode)
		}
	}
}

func TestModelNotReady(t *testing.T) {
	if got := New(nil, 0).View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestTonightEnterOpensBody(t *testing.T) {
	m := readyModel(t)
	next, _ := m.Update(key("down"))
	m = next.(Model)
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}

	saturn := testSnapshot(t).Reports[1].Target.ID
	var open OpenBodyMsg
	var found bool
	msgs := []tea.Msg{cmd()}
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		switch msg := msg.(type) {
		case OpenBodyMsg:
			open, found = msg, true
		case tea.BatchMsg:
			for _, c := range msg {
				if c != nil {
					msgs = append(msgs, c())
				}
			}
		}
	}
	if !found || open.ID != saturn {
		t.Fatalf("got %+v (found %v), want OpenBodyMsg for Saturn", open, found)
	}

	next, _ = m.Update(open)
	m = next.(Model)
	if m.viewMode != ViewBody || m.SelectedTarget() != saturn {
		t.Errorf("view %v selected %v", m.viewMode, m.SelectedTarget())
	}
}

func TestTimeTravelWithoutLoader(t *testing.T) {
	m := readyModel(t)
	next, cmd := m.Update(key(">"))
	m = next.(Model)
	if m.offset != time.Hour {
		t.Errorf("offset = %v", m.offset)
	}
	if m.loading {
		t.Error("no loader: nothing should be loading")
	}
	_ = cmd
	next, _ = m.Update(key("0"))
	if next.(Model).offset != 0 {
		t.Error("0 should reset the offset")
	}
}

func TestDataUpdateSchedulesRefresh(t *testing.T) {
	m := readyModel(t)
	if want := testTime.Add(time.Minute); !m.snapshot.NextRefresh.Equal(want) {
		t.Errorf("NextRefresh = %v, want %v", m.snapshot.NextRefresh, want)
	}
}

func TestErrorMsgShownInFooter(t *testing.T) {
	m := readyModel(t)
	next, _ := m.Update(ErrorMsg{Error: errPartial})
	if out := next.(Model).View(); !strings.Contains(out, "Error: observe Halley") {
		t.Error("footer should show the error")
	}
}

func TestBodyDetailNavigation(t *testing.T) {
	b := NewBodyDetailModel().UpdateData(testSnapshot(t))
	ids := []ephem.TargetID{}
	for range 4 {
		ids = append(ids, b.SelectedID())
		b, _ = b.Update(key("right"))
	}
	snap := testSnapshot(t)
	want := []ephem.TargetID{snap.Reports[0].Target.ID, snap.Reports[1].Target.ID, snap.Reports[2].Target.ID, snap.Reports[0].Target.ID}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("step %d selected %v, want %v", i, ids[i], want[i])
		}
	}
	b, _ = b.Update(key("h"))
	if b.SelectedID() != snap.Reports[0].Target.ID {
		t.Errorf("left from Saturn should select Mars, got %v", b.SelectedID())
	}
}

func TestBodyDetailView(t *testing.T) {
	b := NewBodyDetailModel().SetSize(120, 30)
	if out := b.View(); !strings.Contains(out, "Computing") {
		t.Errorf("empty view = %q", out)
	}
	b = b.UpdateData(testSnapshot(t))
	out := b.View()
	for _, want := range []string{"Mars  (planet)", "RA / Dec", "Today (UT)", "00h", "24h", "now: +45°"} {
		if !strings.Contains(out, want) {
			t.Errorf("body view missing %q", want)
		}
	}
}

func TestAltitudeTrace(t *testing.T) {
	r := testReport(t, "Mars", 45, 120)
	trace := altitudeTrace(&r, 24)
	if len(trace) != 24 {
		t.Fatalf("len = %d", len(trace))
	}
	lo, hi := trace[0], trace[0]
	for _, a := range trace {
		lo, hi = min(lo, a), max(hi, a)
	}
	// Dec +23.1 at 51.5°N culminates at 61.6° and bottoms out at -15.4°.
	if hi > 61.7 || hi < 58 || lo < -15.5 || lo > -12 {
		t.Errorf("trace range [%.1f, %.1f]", lo, hi)
	}
	if altitudeTrace(&r, 0) != nil {
		t.Error("zero samples should give nil")
	}
}

func TestInterpolateAltColor(t *testing.T) {
	r, g, b := interpolateAltColor(0)
	if [3]uint8{r, g, b} != altColorLow {
		t.Errorf("t=0 -> %v", [3]uint8{r, g, b})
	}
	r, g, b = interpolateAltColor(1)
	if [3]uint8{r, g, b} != altColorHigh {
		t.Errorf("t=1 -> %v", [3]uint8{r, g, b})
	}
	r, g, b = interpolateAltColor(2)
	if [3]uint8{r, g, b} != altColorHigh {
		t.Errorf("t=2 should clamp, got %v", [3]uint8{r, g, b})
	}
}

func TestGradientColorFormat(t *testing.T) {
	for _, c := range []string{gradientColor(0, 0, 80, 6), gradientColor(79, 5, 80, 6)} {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("gradientColor = %q", c)
		}
	}
}
