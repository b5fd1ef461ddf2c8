package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/photometry"
)

func TestOrbitModelInit(t *testing.T) {
	m := NewOrbitModel()
	if m.FocusedBody() != nil {
		t.Error("new model should focus the Sun")
	}
	if m.scale() != 1.0 {
		t.Errorf("scale = %v, want 1", m.scale())
	}
}

func TestOrbitModelFocusNavigation(t *testing.T) {
	m := NewOrbitModel().UpdateData(testSnapshot(t))
	var names []string
	for range 4 {
		m, _ = m.Update(key("k"))
		if b := m.FocusedBody(); b != nil {
			names = append(names, b.Name)
		} else {
			names = append(names, "Sun")
		}
	}
	want := []string{"Earth", "Mars", "Sun", "Earth"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("step %d = %s, want %s", i, names[i], want[i])
		}
	}
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	if m.FocusedBody() == nil || m.FocusedBody().Name != "Mars" {
		t.Errorf("j from Sun should wrap to the last body")
	}
}

func TestOrbitModelZoom(t *testing.T) {
	m := NewOrbitModel()
	for range 20 {
		m, _ = m.Update(key("+"))
	}
	if m.scale() != zoomLevels[len(zoomLevels)-1] {
		t.Errorf("zoom in clamps at %v, got %v", zoomLevels[len(zoomLevels)-1], m.scale())
	}
	for range 20 {
		m, _ = m.Update(key("-"))
	}
	if m.scale() != zoomLevels[0] {
		t.Errorf("zoom out clamps at %v, got %v", zoomLevels[0], m.scale())
	}
}

func TestOrbitProject(t *testing.T) {
	m := NewOrbitModel()
	x, y := m.project(90, 9)
	if math.Abs(x) > 1e-12 || math.Abs(y-1) > 1e-12 {
		t.Errorf("log project(90°, 9 AU) = (%v, %v), want (0, 1)", x, y)
	}
	m, _ = m.Update(key("z"))
	if m.scaleMode != ScaleLinear {
		t.Fatalf("z should switch to linear, got %v", m.scaleMode)
	}
	x, y = m.project(180, 1.5)
	if math.Abs(x+1.5) > 1e-12 || math.Abs(y) > 1e-12 {
		t.Errorf("linear project(180°, 1.5 AU) = (%v, %v)", x, y)
	}
}

func TestOrbitModelView(t *testing.T) {
	m := NewOrbitModel().SetSize(100, 30).UpdateData(testSnapshot(t))
	out := m.View()
	for _, want := range []string{"☉", "⊕", "Mars", ">>> Sun", "2 bodies", "scale log"} {
		if !strings.Contains(out, want) {
			t.Errorf("orbit view missing %q", want)
		}
	}
	m, _ = m.Update(key("k"))
	if out := m.View(); !strings.Contains(out, ">>> Earth  L 180.00°") {
		t.Errorf("HUD should describe Earth:\n%s", out)
	}
}

func TestOrbitModelSunNotCoveredByLabel(t *testing.T) {
	snap := testSnapshot(t)
	// Mercury sits just left of the Sun on its row, so its label runs
	// across the centre cell.
	snap.Orbits = []OrbitBody{{
		Name:  "Mercury",
		Kind:  ephem.KindPlanet,
		Helio: photometry.HelioPosition{L: 180, R: 0.05},
	}}
	m := NewOrbitModel().SetSize(100, 30).UpdateData(snap)
	if !strings.Contains(m.View(), "☉") {
		t.Error("Sun glyph overwritten by a label")
	}
}
