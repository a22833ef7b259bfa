package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/kubb-counter/internal/core"
)

// History layout constants
const (
	historyChrome  = 10 // Lines used by title, filters, header and help
	historyTimeout = 5 * time.Second
)

// HistoryStore is a record store that can also list past sessions.
type HistoryStore interface {
	core.RecordStore
	core.HistoryReader
}

// HistoryKeyMap defines the key bindings of the history view.
type HistoryKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevPlayer   key.Binding
	NextPlayer   key.Binding
	NextDistance key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPlayer, k.NextPlayer, k.NextDistance, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevPlayer, k.NextPlayer, k.NextDistance},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PrevPlayer: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev player"),
		),
		NextPlayer: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right", "next player"),
		),
		NextDistance: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "distance"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryFilter selects the sessions shown in the history view.
// Empty values mean "all".
type HistoryFilter struct {
	Player   core.Player
	Distance core.Distance
	Quantity int // Used for the most-hits best only
	Limit    int
}

// HistoryModel is the Bubble Tea model for browsing past sessions.
type HistoryModel struct {
	store     HistoryStore
	players   []core.Player   // "" first, meaning all players
	distances []core.Distance // "" first, meaning all distances
	filter    HistoryFilter
	records   []core.SessionRecord
	bests     *core.BestsReport
	err       error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	theme     Theme
	width     int
	height    int
	quitting  bool
}

// NewHistoryModel creates a history view over store.
func NewHistoryModel(store HistoryStore, players []core.Player, distances []core.Distance, filter HistoryFilter, width, height int) HistoryModel {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	m := HistoryModel{
		store:     store,
		players:   append([]core.Player{""}, players...),
		distances: append([]core.Distance{""}, distances...),
		filter:    filter,
		help:      help.New(),
		keys:      DefaultHistoryKeyMap(),
		theme:     DefaultTheme(),
		width:     width,
		height:    height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates the session table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Player", Width: 10},
		{Title: "Distance", Width: 9},
		{Title: "Hits", Width: 9},
		{Title: "%", Width: 6},
		{Title: "Streak", Width: 6},
		{Title: "Time", Width: 6},
	}

	height := m.height - historyChrome
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches sessions and bests for the current filter.
func (m *HistoryModel) load() {
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()

	m.err = nil
	m.bests = nil
	records, err := m.store.ListSessions(ctx, m.filter.Player, m.filter.Distance, m.filter.Limit)
	if err != nil {
		m.err = err
		m.records = nil
	} else {
		m.records = records
	}

	if m.filter.Player != "" && m.filter.Distance != "" && m.err == nil {
		report, err := m.store.FetchBests(ctx, m.filter.Player, m.filter.Distance, m.filter.Quantity)
		if err == nil {
			m.bests = &report
		}
	}

	m.table.SetRows(historyRows(m.records))
	m.table.GotoTop()
}

func historyRows(records []core.SessionRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		s := r.Summary
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			string(s.Player),
			string(s.Distance),
			fmt.Sprintf("%d/%d", s.Hits, s.Quantity),
			fmt.Sprintf("%.1f", s.HitPercentage),
			fmt.Sprintf("%d", s.LongestHitStreak),
			core.FormatClock(time.Duration(s.DurationSeconds) * time.Second),
		}
	}
	return rows
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPlayer):
			m.filter.Player = cycleValue(m.players, m.filter.Player, 1)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevPlayer):
			m.filter.Player = cycleValue(m.players, m.filter.Player, -1)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.NextDistance):
			m.filter.Distance = cycleValue(m.distances, m.filter.Distance, 1)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(historyRows(m.records))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(centerText("SESSION HISTORY", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.filterLine(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.bestsSummary(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.tableContent()))
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) filterLine() string {
	player, distance := string(m.filter.Player), string(m.filter.Distance)
	if player == "" {
		player = "all players"
	}
	if distance == "" {
		distance = "all distances"
	}
	return m.theme.Subtitle.Render(fmt.Sprintf("< %s >  ·  %s", player, distance))
}

func (m HistoryModel) bestsSummary() string {
	if m.bests == nil {
		return ""
	}
	return m.theme.Muted.Render(FormatBests(*m.bests, m.filter.Quantity))
}

func (m HistoryModel) tableContent() string {
	switch {
	case m.err != nil:
		return m.theme.Failure.Render("Could not load sessions: " + m.err.Error())
	case len(m.records) == 0:
		return m.theme.Muted.Padding(2, 4).Render("No sessions recorded yet.\nFinish a session and submit it!")
	}
	return m.table.View()
}

// FormatBests renders a bests report on one line.
func FormatBests(r core.BestsReport, quantity int) string {
	if r.TotalGames == 0 {
		return "no games on record"
	}
	return fmt.Sprintf("%d games · longest hit streak %d · best %.1f%% · most hits in %d throws %d",
		r.TotalGames, r.Bests.MaxHitStreak, r.Bests.MaxHitPercentage, quantity, r.Bests.MaxHitsForQuantity)
}

// RunHistory runs the history view until the user quits.
func RunHistory(m HistoryModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// WriteHistory prints records as a plain text table.
func WriteHistory(w io.Writer, records []core.SessionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers("DATE", "PLAYER", "DISTANCE", "HITS", "%", "STREAK", "TIME")
	for _, row := range historyRows(records) {
		t.Row(row...)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
