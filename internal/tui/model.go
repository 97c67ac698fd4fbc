// Package tui is the terminal control surface of the play command
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/redetach/multidist/pkg/dsp/distortion"
	"github.com/redetach/multidist/pkg/multidist"
)

// GainStep is the gain change per arrow key press
const GainStep = 0.05

const refreshInterval = 100 * time.Millisecond

// Player is the live host as seen from the UI goroutine
type Player interface {
	Set(id uint32, value float64) bool
	Position() int
	Frames() int
	Dropped() int64
}

// Meter reports DSP load as a fraction of the block budget
type Meter interface {
	Load() float64
	PeakLoad() float64
}

type tickMsg time.Time

// Model represents the TUI state
type Model struct {
	player     Player
	meter      Meter
	title      string
	sampleRate float64

	// Parameters as last sent
	gain float64
	mode distortion.Mode

	// Playback
	position int
	frames   int
	dropped  int64
	load     float64
	peak     float64
	done     bool

	width int
}

// NewModel creates a model showing settings as the starting point
func NewModel(player Player, meter Meter, title string, sampleRate float64, settings multidist.Settings) Model {
	return Model{
		player:     player,
		meter:      meter,
		title:      title,
		sampleRate: sampleRate,
		gain:       float64(settings.Gain),
		mode:       settings.Mode,
	}
}

// Run starts the TUI
func Run(m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh loop
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.refresh()
		if m.done {
			return m, tea.Quit
		}
		return m, tick()
	}

	return m, nil
}

func (m *Model) refresh() {
	if m.player != nil {
		m.position = m.player.Position()
		m.frames = m.player.Frames()
		m.dropped = m.player.Dropped()
		m.done = m.frames > 0 && m.position >= m.frames
	}
	if m.meter != nil {
		m.load = m.meter.Load()
		m.peak = m.meter.PeakLoad()
	}
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "up":
		m.setGain(m.gain + GainStep)
	case "left", "h", "down":
		m.setGain(m.gain - GainStep)
	case "m":
		if m.mode == distortion.ModeHarsh {
			m.mode = distortion.ModeDefault
		} else {
			m.mode = distortion.ModeHarsh
		}
		m.send(multidist.ParamSelection, float64(m.mode))
	}

	return m, nil
}

func (m *Model) setGain(g float64) {
	g = math.Round(g*100) / 100
	g = math.Max(0, math.Min(1, g))
	if g == m.gain {
		return
	}
	m.gain = g
	m.send(multidist.ParamGain, g)
}

func (m *Model) send(id uint32, value float64) {
	if m.player != nil {
		m.player.Set(id, value)
	}
}

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MultiDist"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	titleWidth := 48
	if m.width > 12 && m.width-9 < titleWidth {
		titleWidth = m.width - 9
	}
	row("Playing:", truncate(m.title, titleWidth))
	row("Gain:", fmt.Sprintf("[%s] %.2f", renderBar(m.gain, 1, 20), m.gain))
	row("Mode:", m.mode.Label())
	row("Time:", m.renderTime())
	row("Load:", fmt.Sprintf("%.1f%% (peak %.1f%%)", m.load*100, m.peak*100))

	if m.dropped > 0 {
		b.WriteString(warnStyle.Render(fmt.Sprintf("Dropped edits: %d", m.dropped)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→: gain  m: mode  q: quit"))

	return b.String()
}

func (m Model) renderTime() string {
	if m.sampleRate <= 0 {
		return "-"
	}
	pos := time.Duration(float64(m.position) / m.sampleRate * float64(time.Second))
	total := time.Duration(float64(m.frames) / m.sampleRate * float64(time.Second))
	return fmt.Sprintf("%s / %s", pos.Truncate(time.Second), total.Truncate(time.Second))
}

func renderBar(value, max float64, width int) string {
	filled := int(math.Round(value / max * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
