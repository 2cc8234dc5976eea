package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nthornton/blink/internal/playback"
	"github.com/nthornton/blink/internal/progress"
)

const (
	stepBackWords    = 10
	wpmStep          = 50
	autosaveInterval = 30 * time.Second
)

type styles struct {
	orp        lipgloss.Style
	wordBefore lipgloss.Style
	wordAfter  lipgloss.Style
	status     lipgloss.Style
	paused     lipgloss.Style
	complete   lipgloss.Style
}

func newStyles(theme string) styles {
	text := lipgloss.Color("#FFFFFF")
	dim := lipgloss.Color("#888888")
	if theme == "light" {
		text = lipgloss.Color("#000000")
		dim = lipgloss.Color("#555555")
	}
	return styles{
		orp:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
		wordBefore: lipgloss.NewStyle().Foreground(text),
		wordAfter:  lipgloss.NewStyle().Foreground(text),
		status:     lipgloss.NewStyle().Foreground(dim).Padding(0, 1),
		paused:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00")).Bold(true),
		complete:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true),
	}
}

type keyMap struct {
	PlayPause key.Binding
	SpeedUp   key.Binding
	SpeedDown key.Binding
	StepBack  key.Binding
	ParaStart key.Binding
	NextPara  key.Binding
	Restart   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/play")),
		SpeedUp:   key.NewBinding(key.WithKeys("+", "=", "up"), key.WithHelp("+/↑", "faster")),
		SpeedDown: key.NewBinding(key.WithKeys("-", "down"), key.WithHelp("-/↓", "slower")),
		StepBack:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back 10 words")),
		ParaStart: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "paragraph start")),
		NextPara:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next paragraph")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.SpeedUp, k.SpeedDown, k.ParaStart, k.NextPara, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.SpeedUp, k.SpeedDown},
		{k.StepBack, k.ParaStart, k.NextPara},
		{k.Restart, k.Help, k.Quit},
	}
}

type model struct {
	engine    *playback.Engine
	store     *progress.Store
	path      string
	streamLen int
	log       *zap.Logger

	keys   keyMap
	help   help.Model
	bar    progressbar.Model
	styles styles

	// seq invalidates scheduled ticks: any pause or seek bumps it so a
	// tick already in flight is dropped instead of firing late.
	seq      int
	width    int
	height   int
	quitting bool
}

type tickMsg struct {
	seq int
}

type autosaveMsg struct{}

func tickCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

func autosaveCmd() tea.Cmd {
	return tea.Tick(autosaveInterval, func(time.Time) tea.Msg {
		return autosaveMsg{}
	})
}

func newModel(engine *playback.Engine, store *progress.Store, path string, streamLen int, theme string, log *zap.Logger) model {
	return model{
		engine:    engine,
		store:     store,
		path:      path,
		streamLen: streamLen,
		log:       log,
		keys:      defaultKeyMap(),
		help:      help.New(),
		bar:       progressbar.New(progressbar.WithDefaultGradient()),
		styles:    newStyles(theme),
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd {
	em, err := m.engine.Start()
	if err != nil {
		return tea.Quit
	}
	return tea.Batch(tickCmd(em.Delay, m.seq), autosaveCmd())
}

func (m model) checkpoint() {
	if m.store != nil {
		m.store.Checkpoint(m.path, m.engine.Cursor(), m.streamLen)
	}
}

// reschedule follows a cursor jump: stale ticks are dropped and, if
// still playing, a fresh tick is scheduled a full interval out.
func (m *model) reschedule() tea.Cmd {
	m.seq++
	if m.engine.Mode() == playback.Playing {
		return tickCmd(m.engine.Interval(), m.seq)
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PlayPause):
			switch m.engine.Mode() {
			case playback.Playing:
				m.engine.Pause()
				m.seq++
				return m, nil
			case playback.Paused:
				if delay, ok := m.engine.Resume(); ok {
					m.seq++
					return m, tickCmd(delay, m.seq)
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.SpeedUp):
			m.engine.SetRate(m.engine.Rate() + wpmStep)
			return m, nil

		case key.Matches(msg, m.keys.SpeedDown):
			m.engine.SetRate(m.engine.Rate() - wpmStep)
			return m, nil

		case key.Matches(msg, m.keys.StepBack):
			m.engine.StepBack(stepBackWords)
			return m, m.reschedule()

		case key.Matches(msg, m.keys.ParaStart):
			m.engine.BackToParagraphStart()
			return m, m.reschedule()

		case key.Matches(msg, m.keys.NextPara):
			m.engine.NextParagraph()
			return m, m.reschedule()

		case key.Matches(msg, m.keys.Restart):
			m.engine.Reset()
			return m, m.reschedule()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Quit):
			m.engine.Stop()
			m.checkpoint()
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bar.Width = msg.Width - 4
		return m, nil

	case tickMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		em, ok := m.engine.Tick()
		if ok {
			return m, tickCmd(em.Delay, m.seq)
		}
		if m.engine.Mode() == playback.Finished {
			m.checkpoint()
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case autosaveMsg:
		if m.store != nil {
			m.checkpoint()
			if err := m.store.Flush(); err != nil {
				m.log.Warn("autosave flush failed", zap.Error(err))
			}
		}
		return m, autosaveCmd()
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		if m.engine.Mode() == playback.Finished {
			return m.styles.complete.Render("\n  Reading complete!\n")
		}
		return ""
	}

	current, total := m.engine.Progress()

	pause := ""
	if m.engine.Mode() == playback.Paused {
		pause = m.styles.paused.Render(" [PAUSED]")
	}
	status := m.styles.status.Render(
		fmt.Sprintf("Word %d/%d | %d WPM | ETA: %s%s",
			current,
			total,
			m.engine.Rate(),
			formatETA(total-current, m.engine.Rate()),
			pause,
		),
	)

	ratio := 0.0
	if total > 0 {
		ratio = float64(current) / float64(total)
	}
	bar := "  " + m.bar.ViewAs(ratio)

	word := m.engine.CurrentWord()
	line := anchorORPText(formatWord(word, m.styles), word, m.width)

	controls := m.help.View(m.keys)

	// Reserve lines: status, bar, and the help footer.
	avail := m.height - 3 - lipgloss.Height(controls)
	if avail < 1 {
		avail = 1
	}
	vPad := avail / 2

	var sb strings.Builder
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(bar)
	sb.WriteString("\n")
	for i := 0; i < vPad; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString(line)
	for i := 0; i < avail-vPad; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString(controls)

	return sb.String()
}

// orpIndex returns the Optimal Recognition Point: the rune the eye
// should fixate on for fastest recognition.
func orpIndex(word string) int {
	length := len([]rune(word))
	if length <= 1 {
		return 0
	} else if length <= 5 {
		return 1
	}
	return length / 3
}

func formatWord(word string, st styles) string {
	if word == "" {
		return ""
	}
	runes := []rune(word)
	orp := orpIndex(word)
	if orp >= len(runes) {
		orp = len(runes) - 1
	}

	before := string(runes[:orp])
	focus := string(runes[orp])
	after := ""
	if orp+1 < len(runes) {
		after = string(runes[orp+1:])
	}

	return st.wordBefore.Render(before) +
		st.orp.Render(focus) +
		st.wordAfter.Render(after)
}

// anchorORPText pads the rendered word so its ORP rune sits at the
// horizontal center of the window.
func anchorORPText(text, word string, width int) string {
	anchor := width / 2
	pad := anchor - orpIndex(word)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + text
}

func formatETA(remainingWords, wpm int) string {
	if wpm <= 0 || remainingWords < 0 {
		return "0m"
	}
	mins := remainingWords / wpm
	if remainingWords%wpm != 0 {
		mins++
	}
	if mins >= 60 {
		return fmt.Sprintf("%dh %dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}
