package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kubb-counter/internal/config"
	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/session"
)

// Setup screen rows.
const (
	rowPlayer = iota
	rowDistance
	rowQuantity
	rowCount
)

// Model is the Bubble Tea model of the counter.
// The controller owns the session state; Model only keeps cosmetic state.
type Model struct {
	ctrl    *session.Controller
	effects effectRunner
	cfg     config.Config
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	theme   Theme
	now     func() time.Time

	row    int // Selected setup row
	width  int
	height int

	lastThrow core.Throw
	flashSeq  int
	flashing  bool
	pulseSeq  int
	pulsing   bool
	quitting  bool
}

// NewModel creates a counter model on the setup screen.
// store may be nil, in which case bests are never shown and submissions fail.
func NewModel(cfg config.Config, store core.RecordStore, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	opts := cfg.SessionOptions()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctrl: session.NewController(opts),
		effects: effectRunner{
			store:   store,
			timeout: cfg.Store.Timeout,
			logger:  logger,
		},
		cfg:     cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		theme:   DefaultTheme(),
		now:     time.Now,
	}
}

// WithSize returns m laid out for a terminal of the given size.
func (m Model) WithSize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Screen returns the controller's current screen.
func (m Model) Screen() session.Screen {
	return m.ctrl.Screen()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case EventMsg:
		return m.dispatch(msg.Event)

	case spinner.TickMsg:
		if r, ok := m.ctrl.Screen().(session.Results); !ok || !r.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pulseEndMsg:
		if msg.seq == m.pulseSeq {
			m.pulsing = false
		}
		return m, nil

	case flashEndMsg:
		if msg.seq == m.flashSeq {
			m.flashing = false
		}
		return m, nil
	}

	return m, nil
}

// dispatch feeds ev to the controller and runs the resulting effects.
func (m Model) dispatch(ev session.Event) (Model, tea.Cmd) {
	effects := m.ctrl.Handle(ev)

	cmds := make([]tea.Cmd, 0, len(effects)+1)
	for _, eff := range effects {
		if cmd := m.effects.run(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if _, ok := ev.(session.Submit); ok {
		if r, ok := m.ctrl.Screen().(session.Results); ok && r.Submitting {
			cmds = append(cmds, m.spinner.Tick)
		}
	}
	return m, tea.Batch(cmds...)
}

// handleKey maps keys to controller events for the current screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch s := m.ctrl.Screen().(type) {
	case session.Setup:
		return m.handleSetupKey(s, msg)

	case session.Active:
		switch {
		case key.Matches(msg, m.keys.Hit):
			return m.recordThrow(s, core.Hit)
		case key.Matches(msg, m.keys.Miss):
			return m.recordThrow(s, core.Miss)
		case key.Matches(msg, m.keys.Abandon):
			return m.dispatch(session.Abandon{})
		}

	case session.Results:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.dispatch(session.Submit{})
		case key.Matches(msg, m.keys.Abandon):
			return m.dispatch(session.Abandon{})
		}
	}

	return m, nil
}

func (m Model) handleSetupKey(s session.Setup, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.row = (m.row + rowCount - 1) % rowCount
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.row = (m.row + 1) % rowCount
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		return m.dispatch(m.cycle(s.Draft, -1))
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(m.cycle(s.Draft, 1))
	case key.Matches(msg, m.keys.Start):
		return m.dispatch(session.Start{})
	}
	return m, nil
}

// cycle returns the selection event moving the current row by step.
func (m Model) cycle(draft core.GameConfig, step int) session.Event {
	choices := m.ctrl.Choices()
	switch m.row {
	case rowPlayer:
		return session.SelectPlayer{Player: cycleValue(choices.Players, draft.Player, step)}
	case rowDistance:
		return session.SelectDistance{Distance: cycleValue(choices.Distances, draft.Distance, step)}
	default:
		return session.SelectQuantity{Quantity: cycleValue(choices.Quantities, draft.Quantity, step)}
	}
}

// cycleValue returns the value step positions away from current, wrapping.
// An unknown current value starts from the first entry.
func cycleValue[T comparable](values []T, current T, step int) T {
	if len(values) == 0 {
		return current
	}
	i := slices.Index(values, current)
	if i < 0 {
		return values[0]
	}
	n := len(values)
	return values[((i+step)%n+n)%n]
}

// recordThrow dispatches the throw and starts its button feedback.
func (m Model) recordThrow(s session.Active, t core.Throw) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m, cmd = m.dispatch(session.RecordThrow{Throw: t})

	m.lastThrow = t
	m.flashSeq++
	m.flashing = true
	cmds := []tea.Cmd{cmd, feedbackTimer(m.cfg.Effects.FlashDuration, flashEndMsg{seq: m.flashSeq})}

	if m.cfg.PulseFor(s.Game.Config.Player) {
		m.pulseSeq++
		m.pulsing = true
		cmds = append(cmds, feedbackTimer(m.cfg.Effects.PulseDuration, pulseEndMsg{seq: m.pulseSeq}))
	}
	return m, tea.Batch(cmds...)
}

func feedbackTimer(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch s := m.ctrl.Screen().(type) {
	case session.Setup:
		body = m.viewSetup(s)
	case session.Active:
		body = m.viewActive(s)
	case session.Celebration:
		body = m.viewCelebration(s)
	case session.Results:
		body = m.viewResults(s)
	}

	return m.layout(body, m.help.View(m.keys.helpFor(m.ctrl.Screen())))
}

// Run starts the Bubble Tea program on the local terminal.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
