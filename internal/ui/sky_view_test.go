package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-almanac/internal/ephem"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{360, 0},
		{-360, 0},
		{350, -10},
		{370, 10},
		{-190, 170},
		{540, -180},
		{-540, 180},
	}

	for _, tt := range tests {
		got := normalizeAngle(tt.input)
		if math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLerpAngle_ShortestPath(t *testing.T) {
	tests := []struct {
		from     float64
		to       float64
		t        float64
		expected float64
	}{
		{0, 90, 0.5, 45},
		{0, 180, 0.5, 90},

		// 350 to 10 goes +20, not -340
		{350, 10, 0.5, 360},
		{350, 10, 0.0, 350},
		{350, 10, 1.0, 370},

		{10, 350, 0.5, 0},
		{10, 350, 1.0, -10},
	}

	for _, tt := range tests {
		got := lerpAngle(tt.from, tt.to, tt.t)
		gotNorm := normalizeAngle(got)
		expNorm := normalizeAngle(tt.expected)

		diff := math.Abs(gotNorm - expNorm)
		if diff > 180 {
			diff = 360 - diff
		}

		if diff > 0.001 {
			t.Errorf("lerpAngle(%v, %v, %v) = %v (norm: %v), want %v (norm: %v)",
				tt.from, tt.to, tt.t, got, gotNorm, tt.expected, expNorm)
		}
	}
}

func TestProjectToScreen(t *testing.T) {
	m := SkyViewModel{
		camAz: 180,
		camEl: 45,
	}

	width := 100
	height := 50

	tests := []struct {
		az, el  float64
		visible bool
		desc    string
	}{
		{180, 45, true, "center of view"},
		{180, 70, true, "high elevation within FOV"},
		{180, 20, true, "low elevation within FOV"},
		{180, 90, false, "above FOV (camEl=45, fov=60)"},
		{180, 0, false, "below FOV"},
		{0, 45, false, "opposite side (180 away)"},
		{240, 45, true, "within FOV right"},
		{120, 45, true, "within FOV left"},
		{300, 45, false, "outside FOV"},
	}

	for _, tt := range tests {
		_, _, visible := m.projectToScreen(tt.az, tt.el, width, height)
		if visible != tt.visible {
			t.Errorf("projectToScreen(%v, %v) visible = %v, want %v (%s)",
				tt.az, tt.el, visible, tt.visible, tt.desc)
		}
	}
}

func TestProjectToScreen_CenterIsCenter(t *testing.T) {
	m := SkyViewModel{
		camAz: 180,
		camEl: 30,
	}

	width := 100
	height := 50

	x, y, visible := m.projectToScreen(180, 30, width, height)

	if !visible {
		t.Fatal("center object should be visible")
	}

	if x < 40 || x > 60 {
		t.Errorf("center x = %d, expected near 50", x)
	}

	if y < 10 || y > 40 {
		t.Errorf("center y = %d, expected in middle region", y)
	}
}

func TestSkyViewUpdateDataKeepsBodiesAboveHorizon(t *testing.T) {
	snap := testSnapshot(t)
	m := NewSkyViewModel().SetSize(100, 30).UpdateData(snap)

	if len(m.bodies) != 2 {
		t.Fatalf("got %d bodies, want Mars and Moon", len(m.bodies))
	}
	for _, r := range m.bodies {
		if r.Horizontal.Altitude <= 0 {
			t.Errorf("%s below horizon kept", r.Target.Name)
		}
	}
	// Camera snaps to the first body.
	if m.camAz != 120 || m.camEl != 45 {
		t.Errorf("camera = (%v, %v), want Mars at (120, 45)", m.camAz, m.camEl)
	}
	if m.site.Name != "Greenwich" || !m.at.Equal(testTime) {
		t.Errorf("site/time not carried: %v %v", m.site, m.at)
	}
}

func TestSkyViewFocusKeepsTargetAcrossUpdates(t *testing.T) {
	snap := testSnapshot(t)
	moon := snap.Reports[2].Target.ID
	m := NewSkyViewModel().UpdateData(snap)

	m, cmd := m.Focus(moon)
	if cmd == nil || !m.animating {
		t.Fatal("focusing should start an animation")
	}
	if m.bodies[m.focusIdx].Target.ID != moon {
		t.Fatalf("focused %v", m.bodies[m.focusIdx].Target.Name)
	}
	m = m.UpdateData(snap)
	if m.bodies[m.focusIdx].Target.ID != moon {
		t.Errorf("focus lost after update: %v", m.bodies[m.focusIdx].Target.Name)
	}

	if _, cmd := m.Focus(snap.Reports[1].Target.ID); cmd != nil {
		t.Error("a body below the horizon cannot take focus")
	}
}

func TestSkyViewRender(t *testing.T) {
	m := NewSkyViewModel().SetSize(100, 30).UpdateData(testSnapshot(t))
	out := m.View()
	for _, want := range []string{"Sky View", "Greenwich", ">>> Mars", string(glyphBodyFocused), "◄ Mars", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("sky view missing %q", want)
		}
	}
	if strings.Contains(out, "Saturn") {
		t.Error("Saturn is below the horizon")
	}

	small := NewSkyViewModel().SetSize(10, 5)
	if got := small.View(); got != "Sky view requires larger terminal" {
		t.Errorf("small view = %q", got)
	}
}

func TestSkyViewLabelModes(t *testing.T) {
	m := NewSkyViewModel().SetSize(100, 30).UpdateData(testSnapshot(t))
	m.camAz, m.camEl = 160, 35 // Mars and the Moon both in view
	m.labelMode = LabelAll
	if out := m.View(); !strings.Contains(out, "Moon") {
		t.Error("LabelAll should label the Moon")
	}
	m.labelMode = LabelNone
	if out := m.renderSkyCanvas(100, 26); strings.Contains(out, "Mars") {
		t.Error("LabelNone should draw no labels")
	}
}

func TestBodyGlyph(t *testing.T) {
	tests := []struct {
		kind    ephem.Kind
		focused bool
		want    rune
	}{
		{ephem.KindSun, false, glyphSun},
		{ephem.KindSun, true, glyphSun},
		{ephem.KindMoon, false, glyphMoon},
		{ephem.KindPlanet, false, glyphBody},
		{ephem.KindPlanet, true, glyphBodyFocused},
	}
	for _, tt := range tests {
		if got, _ := bodyGlyph(tt.kind, tt.focused); got != tt.want {
			t.Errorf("bodyGlyph(%v, %v) = %c, want %c", tt.kind, tt.focused, got, tt.want)
		}
	}
}

func TestStarGlyph(t *testing.T) {
	m := SkyViewModel{}
	if g, _ := m.starGlyph(-1.46); g != glyphStarBright {
		t.Errorf("Sirius glyph = %c", g)
	}
	if g, _ := m.starGlyph(2.0); g != glyphStarMedium {
		t.Errorf("mag 2 glyph = %c", g)
	}
}
