package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cosmoviz/internal/config"
	"github.com/san-kum/cosmoviz/internal/export"
	"github.com/san-kum/cosmoviz/internal/host"
	"github.com/san-kum/cosmoviz/internal/logging"
)

const (
	width           = 80
	height          = 24
	sidebarWidth    = 36
	chromeRows      = 3
	historyCapacity = 300
)

var (
	canvasStyle  = lipgloss.NewStyle().PaddingRight(1)
	sidebarStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 1).Width(sidebarWidth)
)

type TickMsg time.Time

// Model is the live terminal view of one visualizer.
type Model struct {
	cfg  *config.Config
	log  *log.Logger
	sess *host.Session

	width, height int
	population    []float64
	recording     bool
	gif           *export.GIF
	status        string
	showHelp      bool
}

// NewModel builds the view for cfg.Visualizer and starts its animator.
func NewModel(cfg *config.Config, logger *log.Logger) (Model, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	m := Model{cfg: cfg, log: logger, width: width, height: height}
	cols, rows := m.canvasSize()
	sess, err := host.New(cfg, float64(cols), float64(rows*2), 1, logger)
	if err != nil {
		return Model{}, err
	}
	m.sess = sess
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols, rows := m.canvasSize()
		m.sess.Resize(float64(cols), float64(rows*2), 1)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.sess.Close()
			return m, tea.Quit
		case " ":
			m.sess.TogglePause()
		case "tab":
			m.switched(m.sess.Next())
		case "r":
			m.switched(m.sess.Reseed())
		case "[":
			m.sess.ShiftStage(-1)
		case "]":
			m.sess.ShiftStage(1)
		case "t":
			NextTheme()
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.sess.Step() {
			m.sample()
			if m.recording {
				m.gif.Add(m.sess.Surface().Image())
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) canvasSize() (cols, rows int) {
	cols = max(m.width-sidebarWidth-3, 8)
	rows = max(m.height-chromeRows, 4)
	return cols, rows
}

func (m *Model) switched(err error) {
	if err != nil {
		m.status = err.Error()
		m.log.Error("switch failed", "err", err)
		return
	}
	m.population = m.population[:0]
}

func (m *Model) sample() {
	m.population = append(m.population, float64(m.sess.Population()))
	if len(m.population) > historyCapacity {
		m.population = m.population[1:]
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.gif = export.NewGIF(30)
		return
	}
	m.recording = false
	name := fmt.Sprintf("cosmoviz-%s.gif", m.sess.Kind())
	if err := m.saveGIF(name); err != nil {
		m.status = err.Error()
		m.log.Error("recording failed", "err", err)
	} else {
		m.status = "saved " + name
	}
	m.gif = nil
}

func (m *Model) saveGIF(path string) error {
	if m.gif == nil || m.gif.Len() == 0 {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.gif.Encode(f)
}

func (m Model) View() string {
	canvas := canvasStyle.Render(HalfBlock(m.sess.Surface().Image()))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, sidebarStyle.Render(m.sidebar()))
}

func (m Model) sidebar() string {
	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.sess.Kind()), CurrentTheme.Primary, CurrentTheme.Secondary) + "\n")

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.recording:
		status = StatusRecording.Render("● REC")
	case m.sess.Paused():
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n" + Separator(sidebarWidth-2) + "\n")

	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.sess.Animator().Frames()))
	row("Seeds", fmt.Sprintf("%d", m.sess.Animator().Seeds()))
	if n := len(m.population); n > 0 {
		row("Particles", fmt.Sprintf("%.0f", m.population[n-1]))
	}
	row("Theme", CurrentTheme.Name)

	if st, ok := m.sess.Stage(); ok {
		row("Stage", fmt.Sprintf("%d/%d %s", st.Index+1, st.Count, st.Name))
		row("Duration", st.Duration)
		s.WriteString(labelStyle().Render("Transition") + ProgressBar(st.Progress, 16) + "\n")
	}

	if len(m.population) > 1 {
		chart := asciigraph.Plot(m.population,
			asciigraph.Height(5),
			asciigraph.Width(sidebarWidth-10),
			asciigraph.Caption("population"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(chart) + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + mutedStyle().Render(m.status) + "\n")
	}

	s.WriteString("\n")
	if m.showHelp {
		for _, kv := range [][2]string{
			{"space", "pause"}, {"tab", "next visualizer"}, {"r", "reseed"},
			{"[ ]", "stage"}, {"t", "theme"}, {"g", "record gif"}, {"q", "quit"},
		} {
			s.WriteString(keyStyle().Render(fmt.Sprintf("%-6s", kv[0])) + mutedStyle().Render(kv[1]) + "\n")
		}
	} else {
		s.WriteString(keyStyle().Render("?") + mutedStyle().Render(" help  ") + keyStyle().Render("q") + mutedStyle().Render(" quit") + "\n")
	}
	return s.String()
}

// Run starts the live view full screen and blocks until the user quits.
func Run(cfg *config.Config, logger *log.Logger) error {
	m, err := NewModel(cfg, logger)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
