package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	historyCapacity = 600
	maxBarRows      = 16
	graphHeight     = 5
)

// Engine is the part of session.Controller the UI drives.
type Engine interface {
	RequestSort(ctx context.Context, algorithm string) (*session.Result, error)
	Randomize() (trace.Sequence, error)
	Current() (trace.Sequence, []int)
	SetConfig(cfg session.Config)
}

// StepMsg carries one published Event into the update loop.
type StepMsg trace.Event

// DoneMsg reports the end of a sort request.
type DoneMsg struct {
	Algorithm string
	Result    *session.Result
	Err       error
}

type RandomizedMsg struct {
	Sequence trace.Sequence
	Err      error
}

// ConfigMsg delivers a reloaded config file.
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

type status int

const (
	statusIdle status = iota
	statusRunning
	statusDone
	statusRejected
	statusError
)

// Model is the interactive sorting view.
type Model struct {
	engine Engine
	ctx    context.Context
	cancel context.CancelFunc

	algorithms []string
	cursor     int

	values     trace.Sequence
	highlights []int
	session    string
	algorithm  string
	index      int
	running    bool
	inversions []float64

	status  status
	message string

	theme         Theme
	styles        styles
	barScale      int
	showHelp      bool
	width, height int

	onResult func(*session.Result)
}

func NewModel(engine Engine, cfg *config.Config) Model {
	ctx, cancel := context.WithCancel(context.Background())
	values, highlights := engine.Current()
	theme := GetTheme(cfg.Theme)

	m := Model{
		engine:     engine,
		ctx:        ctx,
		cancel:     cancel,
		algorithms: algorithms.NewRegistry().List(),
		values:     values,
		highlights: highlights,
		inversions: make([]float64, 0, historyCapacity),
		message:    "ready",
		theme:      theme,
		styles:     newStyles(theme),
		barScale:   cfg.BarScale,
		width:      80,
		height:     24,
	}
	for i, name := range m.algorithms {
		if name == cfg.Algorithm {
			m.cursor = i
		}
	}
	m.pushInversions()
	return m
}

// OnResult registers fn to receive every completed Result.
func (m Model) OnResult(fn func(*session.Result)) Model {
	m.onResult = fn
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case StepMsg:
		m.applyEvent(trace.Event(msg))
	case DoneMsg:
		m.applyDone(msg)
	case RandomizedMsg:
		if msg.Err != nil {
			m.setStatus(statusRejected, "cannot randomize while sorting")
			return m, nil
		}
		m.values, m.highlights = msg.Sequence, nil
		m.resetHistory()
		m.setStatus(statusIdle, "randomized")
	case ConfigMsg:
		if msg.Err != nil {
			m.setStatus(statusError, fmt.Sprintf("config: %v", msg.Err))
			return m, nil
		}
		m.theme = GetTheme(msg.Config.Theme)
		m.styles = newStyles(m.theme)
		m.barScale = msg.Config.BarScale
		m.engine.SetConfig(msg.Config.Session())
		m.setStatus(m.status, "config reloaded")
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.cancel()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algorithms)-1 {
			m.cursor++
		}
	case "enter", "s":
		return m, m.sortCmd(m.algorithms[m.cursor])
	case "r":
		return m, m.randomizeCmd()
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// sortCmd runs the request off the update loop; steps arrive as StepMsg
// while it blocks.
func (m Model) sortCmd(algorithm string) tea.Cmd {
	engine, ctx := m.engine, m.ctx
	return func() tea.Msg {
		res, err := engine.RequestSort(ctx, algorithm)
		return DoneMsg{Algorithm: algorithm, Result: res, Err: err}
	}
}

func (m Model) randomizeCmd() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		seq, err := engine.Randomize()
		return RandomizedMsg{Sequence: seq, Err: err}
	}
}

func (m *Model) applyEvent(ev trace.Event) {
	m.values = ev.Step.Values()
	m.highlights = ev.Step.Highlights()

	if ev.Session == "" {
		m.resetHistory()
		return
	}
	if ev.Session != m.session {
		m.session = ev.Session
		m.algorithm = ev.Algorithm
		m.inversions = m.inversions[:0]
	}
	m.index = ev.Index
	m.running = !ev.Final
	m.pushInversions()

	if ev.Final {
		m.setStatus(statusDone, fmt.Sprintf("%s done in %d steps", ev.Algorithm, ev.Index))
	} else {
		m.setStatus(statusRunning, fmt.Sprintf("%s step %d", ev.Algorithm, ev.Index+1))
	}
}

func (m *Model) applyDone(msg DoneMsg) {
	switch {
	case msg.Err == nil:
		m.running = false
		m.setStatus(statusDone, fmt.Sprintf("%s done in %d steps", msg.Algorithm, msg.Result.StepCount))
		if m.onResult != nil {
			m.onResult(msg.Result)
		}
	case errors.Is(msg.Err, trace.ErrSessionActive):
		m.setStatus(statusRejected, fmt.Sprintf("rejected %s: %s is still sorting", msg.Algorithm, m.algorithm))
	case errors.Is(msg.Err, trace.ErrSuperseded):
		// the newer session already owns the status line
	case errors.Is(msg.Err, context.Canceled):
		m.running = false
		m.highlights = nil
		m.setStatus(statusIdle, "cancelled")
	default:
		m.setStatus(statusError, msg.Err.Error())
	}
}

func (m *Model) setStatus(s status, message string) {
	m.status, m.message = s, message
}

func (m *Model) resetHistory() {
	m.inversions = m.inversions[:0]
	m.pushInversions()
}

func (m *Model) pushInversions() {
	m.inversions = append(m.inversions, float64(m.values.Inversions()))
	if len(m.inversions) > historyCapacity {
		m.inversions = m.inversions[len(m.inversions)-historyCapacity:]
	}
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString("\n  " + GradientText("SORTVIZ", m.theme.Bar, m.theme.Active))
	b.WriteString("  " + s.subtle.Render("sorting algorithm visualizer · "+m.theme.Name) + "\n")
	b.WriteString("  " + s.separator(44) + "\n\n")

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		s.panel.Render(m.viewMenu()),
		"  ",
		s.panel.Render(m.viewBars()),
	)
	b.WriteString(content + "\n")
	b.WriteString("  " + m.viewStatus() + "\n")

	if len(m.inversions) >= 2 {
		graph := asciigraph.Plot(m.inversions,
			asciigraph.Height(graphHeight),
			asciigraph.Width(m.graphWidth()),
			asciigraph.Caption("inversions"),
		)
		b.WriteString("\n" + s.graph.Render(indent(graph, "  ")) + "\n")
	}

	if m.showHelp {
		b.WriteString("\n" + s.panel.Render(m.viewHelp()) + "\n")
	}

	b.WriteString("\n  " + s.keyHints("j/k", "select", "enter", "sort", "r", "randomize", "t", "theme", "?", "help", "q", "quit") + "\n")
	return b.String()
}

func (m Model) viewMenu() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.title.Render("ALGORITHMS") + "\n\n")
	for i, name := range m.algorithms {
		desc := algorithms.Info[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("%s %s %s\n", s.cursor.Render("▸"), s.item.Render(fmt.Sprintf("%-10s", name)), s.desc.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s\n", s.subtle.Render(fmt.Sprintf("%-10s", name)), s.desc.Render(desc)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewBars() string {
	return renderBars(m.styles, m.values, m.highlights, m.barScale, m.status == statusDone && m.values.IsSorted())
}

func (m Model) viewStatus() string {
	s := m.styles
	var label string
	switch m.status {
	case statusRunning:
		label = s.running.Render("● running")
	case statusDone:
		label = s.done.Render("✓ done")
	case statusRejected:
		label = s.warn.Render("! rejected")
	case statusError:
		label = s.errText.Render("✗ error")
	default:
		label = s.subtle.Render("○ idle")
	}

	total := len(m.values)
	maxInv := total * (total - 1) / 2
	sorted := 1.0
	if maxInv > 0 {
		sorted = 1 - float64(m.values.Inversions())/float64(maxInv)
	}
	return fmt.Sprintf("%s  %s  %s %s",
		label, m.message, s.progressBar(sorted, 20), s.label.Render(fmt.Sprintf("%3.0f%% sorted", sorted*100)))
}

func (m Model) viewHelp() string {
	s := m.styles
	lines := []string{
		s.title.Render("HELP"),
		"",
		s.keyHints("j/k", "move through the algorithm menu"),
		s.keyHints("enter/s", "sort the current sequence"),
		s.keyHints("r", "shuffle the sequence (only while idle)"),
		s.keyHints("t", "next theme"),
		s.keyHints("q", "quit"),
		"",
		s.hint.Render("highlighted bars are being compared or swapped"),
	}
	return strings.Join(lines, "\n")
}

func (m Model) graphWidth() int {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	if w > 100 {
		w = 100
	}
	return w
}

// Values returns the sequence currently shown.
func (m Model) Values() trace.Sequence { return m.values.Clone() }

func (m Model) Running() bool { return m.running }

func (m Model) Message() string { return m.message }

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
