package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/params"
)

var visualizerInfo = map[string]string{
	params.KindStarfield: "stars drifting toward you",
	params.KindGalaxy:    "spiral, elliptical, irregular",
	params.KindQuantum:   "virtual pairs in the vacuum",
	params.KindStellar:   "a star's lifecycle, stage by stage",
	params.KindTimeline:  "every stage on one line",
}

const defaultPreset = "default"

const (
	stateMenu = iota
	statePresets
	stateLive
)

type app struct {
	state   int
	cursor  int
	kinds   []string
	kind    string
	presets []string
	base    *config.Config
	log     *log.Logger
	live    Model
	err     error

	width, height int
}

// NewInteractiveApp starts at a menu of visualizers. base supplies the
// viewport, seed and default shapes.
func NewInteractiveApp(base *config.Config, logger *log.Logger) tea.Model {
	return app{state: stateMenu, kinds: params.Kinds(), base: base, log: logger}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateLive {
			return m.forward(msg)
		}
	default:
		if m.state == stateLive {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m app) forward(msg tea.Msg) (app, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case statePresets:
		return m.presetKey(msg)
	case stateLive:
		return m.forward(msg)
	}
	return m, nil
}

func (m app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.kinds)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.kind = m.kinds[m.cursor]
		m.presets = append([]string{defaultPreset}, config.ListPresets(m.kind)...)
		m.state, m.cursor = statePresets, 0
	}
	return m, nil
}

func (m app) presetKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.state, m.cursor = stateMenu, 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m app) start() (app, tea.Cmd) {
	cfg := *m.base
	cfg.Visualizer = m.kind
	if name := m.presets[m.cursor]; name != defaultPreset {
		cfg.Apply(config.Presets[m.kind][name])
	}
	live, err := NewModel(&cfg, m.log)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state, m.err = live, stateLive, nil
	cmds := []tea.Cmd{live.Init()}
	if m.width > 0 {
		w, h := m.width, m.height
		cmds = append(cmds, func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} })
	}
	return m, tea.Batch(cmds...)
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewList("COSMOVIZ", "tune the universe", m.kinds, visualizerInfo)
	case statePresets:
		return m.viewList(strings.ToUpper(m.kind), visualizerInfo[m.kind], m.presets, nil)
	case stateLive:
		return m.live.View()
	}
	return ""
}

func (m app) viewList(title, subtitle string, items []string, info map[string]string) string {
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText(title, CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")
	b.WriteString("    " + mutedStyle().Render(subtitle) + "\n    " + Separator(25) + "\n\n")

	selected := valueStyle().Bold(true)
	for i, name := range items {
		desc := mutedStyle().Render(info[name])
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", keyStyle().Render("▸"), selected.Render(fmt.Sprintf("%-18s", name)), desc))
			continue
		}
		b.WriteString(fmt.Sprintf("      %s  %s\n", mutedStyle().Render(fmt.Sprintf("%-18s", name)), desc))
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyStyle().Render("j/k") + mutedStyle().Render(" navigate  ") +
		keyStyle().Render("enter") + mutedStyle().Render(" select  ") +
		keyStyle().Render("q") + mutedStyle().Render(" back/quit") + "\n")
	return b.String()
}

// RunInteractive shows the visualizer menu full screen.
func RunInteractive(base *config.Config, logger *log.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(base, logger), tea.WithAltScreen()).Run()
	return err
}
