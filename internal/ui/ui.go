// Package ui provides the terminal user interface using Bubble Tea, and the
// plain-text report writers used when no terminal is attached.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewTonight ViewMode = iota
	ViewBody
	ViewSky
	ViewOrbit
)

// DefaultRefreshInterval is how often positions are recomputed.
const DefaultRefreshInterval = 30 * time.Second

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg carries a freshly computed snapshot.
	DataUpdateMsg struct {
		Snapshot Snapshot
	}

	// ErrorMsg signals a failure outside a snapshot.
	ErrorMsg struct {
		Error error
	}

	// OpenBodyMsg requests the body view for a target.
	OpenBodyMsg struct {
		ID ephem.TargetID
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	loader   *Loader
	interval time.Duration
	now      func() time.Time
	offset   time.Duration // time travel relative to now
	loading  bool

	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	tonight TonightModel
	body    BodyDetailModel
	sky     SkyViewModel
	orbit   OrbitModel

	snapshot Snapshot
}

// New creates a new root UI model. A nil loader yields a model that only
// renders snapshots delivered with DataUpdateMsg.
func New(loader *Loader, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return Model{
		loader:   loader,
		interval: interval,
		now:      time.Now,
		viewMode: ViewTonight,
		tonight:  NewTonightModel(),
		body:     NewBodyDetailModel(),
		sky:      NewSkyViewModel(),
		orbit:    NewOrbitModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd(), animTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "n":
			m.viewMode = ViewTonight
		case "2", "b":
			m.viewMode = ViewBody
		case "3", "s":
			if m.viewMode != ViewSky {
				var cmd tea.Cmd
				m.sky, cmd = m.sky.Focus(m.body.SelectedID())
				cmds = append(cmds, cmd)
			}
			m.viewMode = ViewSky
		case "4", "o":
			m.viewMode = ViewOrbit
		case "tab":
			m.viewMode = (m.viewMode + 1) % 4
		case "r":
			cmds = append(cmds, m.startRefresh())
		case ">", ".":
			m.offset += time.Hour
			cmds = append(cmds, m.startRefresh())
		case "<", ",":
			m.offset -= time.Hour
			cmds = append(cmds, m.startRefresh())
		case "0":
			m.offset = 0
			cmds = append(cmds, m.startRefresh())
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo, tagline and tabs take 11 lines, the footer 2.
		contentHeight := msg.Height - 13
		m.tonight = m.tonight.SetSize(msg.Width, contentHeight)
		m.body = m.body.SetSize(msg.Width, contentHeight)
		m.sky = m.sky.SetSize(msg.Width, contentHeight)
		m.orbit = m.orbit.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if !m.loading && !m.snapshot.NextRefresh.IsZero() && time.Time(msg).After(m.snapshot.NextRefresh) {
			cmds = append(cmds, m.startRefresh())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		m.body = m.body.SetAnimTick(m.animTick)

	case DataUpdateMsg:
		m.loading = false
		m.snapshot = msg.Snapshot
		m.snapshot.NextRefresh = m.now().Add(m.interval)
		m.tonight = m.tonight.UpdateData(m.snapshot)
		m.body = m.body.UpdateData(m.snapshot)
		m.sky = m.sky.UpdateData(m.snapshot)
		m.orbit = m.orbit.UpdateData(m.snapshot)

	case OpenBodyMsg:
		m.body.SetSelected(msg.ID)
		m.viewMode = ViewBody

	case ErrorMsg:
		m.loading = false
		m.statusMsg = "Error: " + msg.Error.Error()

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewTonight:
		m.tonight, cmd = m.tonight.Update(msg)
	case ViewBody:
		m.body, cmd = m.body.Update(msg)
	case ViewSky:
		m.sky, cmd = m.sky.Update(msg)
	case ViewOrbit:
		m.orbit, cmd = m.orbit.Update(msg)
	}
	return cmd
}

// startRefresh marks a load in flight and returns the command running it.
func (m *Model) startRefresh() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	m.loading = true
	return m.refreshCmd()
}

// refreshCmd computes a snapshot in the background.
func (m Model) refreshCmd() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	loader := m.loader
	at := m.now().Add(m.offset)
	timeout := m.interval
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return DataUpdateMsg{Snapshot: loader.Load(ctx, at)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewTonight:
		content = m.tonight.View()
	case ViewBody:
		content = m.body.View()
	case ViewSky:
		content = m.sky.View()
	case ViewOrbit:
		content = m.orbit.View()
	}
	return m.renderLogo() + m.renderTabs() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗       █████╗ ██╗     ███╗   ███╗ █████╗ ███╗   ██╗ █████╗  ██████╗`,
		`  ██║     ██╔════╝      ██╔══██╗██║     ████╗ ████║██╔══██╗████╗  ██║██╔══██╗██╔════╝`,
		`  ██║     ███████╗█████╗███████║██║     ██╔████╔██║███████║██╔██╗ ██║███████║██║`,
		`  ██║     ╚════██║╚════╝██╔══██║██║     ██║╚██╔╝██║██╔══██║██║╚██╗██║██╔══██║██║`,
		`  ███████╗███████║      ██║  ██║███████╗██║ ╚═╝ ██║██║  ██║██║ ╚████║██║  ██║╚██████╗`,
		`  ╚══════╝╚══════╝      ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝ ╚═════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")
	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Positional Astronomy · Rise, Transit and Set"))
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s | %s", version.Version, m.clockLine())))
	b.WriteString("\n\n")
	return b.String()
}

// clockLine shows the snapshot time, marking time travel.
func (m Model) clockLine() string {
	if m.snapshot.Time.IsZero() {
		return "--"
	}
	s := m.snapshot.Time.UTC().Format("2006-01-02 15:04 UT")
	if m.offset != 0 {
		s += fmt.Sprintf(" (now %+.0fh)", m.offset.Hours())
	}
	return s
}

// gradientColor returns a hex color for a position in the logo gradient:
// indigo through teal to pale gold, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	x := float64(col) / float64(width)
	y := float64(row) / float64(height)

	stops := [][3]float64{{49, 46, 129}, {20, 184, 166}, {250, 204, 21}}
	var c [3]float64
	if x < 0.5 {
		t := x / 0.5
		for i := range c {
			c[i] = stops[0][i] + t*(stops[1][i]-stops[0][i])
		}
	} else {
		t := (x - 0.5) / 0.5
		for i := range c {
			c[i] = stops[1][i] + t*(stops[2][i]-stops[1][i])
		}
	}

	fade := 1.0 - y*0.5
	var out [3]int
	for i := range c {
		out[i] = max(0, min(255, int(c[i]*fade)))
	}
	return fmt.Sprintf("#%02X%02X%02X", out[0], out[1], out[2])
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Tonight", "[2] Body", "[3] Sky", "[4] Orbit"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#14B8A6"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.loading || m.snapshot.LastFetch.IsZero():
		status = accentStyle.Render(spinner) + " " + shimmer("Computing...", m.animTick)
	case m.snapshot.LastError != nil:
		status = errStyle.Render("partial: " + truncate(m.snapshot.LastError.Error(), 60))
	default:
		countdown := max(m.snapshot.NextRefresh.Sub(m.now()).Round(time.Second), 0)
		status = accentStyle.Render("●") + dimStyle.Render(fmt.Sprintf(" refresh in %s (%s)",
			formatDuration(countdown), m.snapshot.FetchDuration.Round(time.Millisecond)))
	}

	var help string
	switch m.viewMode {
	case ViewBody:
		help = "←/→: target | f: features"
	case ViewSky:
		help = "j/k: focus | l: labels | t: stars"
	case ViewOrbit:
		help = "j/k: focus | +/-: zoom | z: scale | l: labels"
	default:
		help = "↑↓: navigate | enter: details"
	}
	help += " | </>: ±1h | 0: now | r: refresh | q: quit"

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

// SelectedTarget returns the target shown in the body view.
func (m Model) SelectedTarget() ephem.TargetID {
	return m.body.SelectedID()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}

// shimmer renders text with a subtle moving shine at position tick.
func shimmer(text string, tick int) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	pos := tick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}
		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 160, 230, 220
		case dist <= 3:
			r8, g8, b8 = 110, 190, 180
		case dist <= 5:
			r8, g8, b8 = 80, 150, 145
		default:
			r8, g8, b8 = 60, 110, 110
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}
