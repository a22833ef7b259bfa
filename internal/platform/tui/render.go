package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/session"
)

const appTitle = "K U B B   C O U N T E R"

// layout stacks the title, body and help footer, centered when the window
// size is known.
func (m Model) layout(body, helpView string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Title.Render(appTitle),
		"",
		m.theme.Panel.Render(body),
		"",
		m.theme.Help.Render(helpView),
	)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewSetup(s session.Setup) string {
	rows := []struct {
		label string
		value string
	}{
		{"Player", string(s.Draft.Player)},
		{"Distance", string(s.Draft.Distance)},
		{"Throws", fmt.Sprintf("%d", s.Draft.Quantity)},
	}

	var b strings.Builder
	b.WriteString(m.theme.Subtitle.Render("New practice session"))
	b.WriteString("\n\n")
	for i, r := range rows {
		value := m.theme.RowValue.Render("  " + r.value + "  ")
		if i == m.row {
			value = m.theme.RowActive.Render("< " + r.value + " >")
		}
		b.WriteString(m.theme.RowLabel.Render(r.label))
		b.WriteString(value)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewActive(s session.Active) string {
	cfg := s.Game.Config
	stats := s.Stats()

	header := m.theme.Subtitle.Render(fmt.Sprintf("%s · %s", cfg.Player, cfg.Distance))
	clock := m.theme.Clock.Render(core.FormatClock(s.Elapsed))
	counter := m.theme.Counter.Render(fmt.Sprintf("%d / %d", len(s.Game.Throws), cfg.Quantity))
	tally := fmt.Sprintf("hits %d · misses %d · streak %d · %d left",
		stats.Hits, stats.Misses, currentStreak(s.Game.Throws, core.Hit), s.Game.Remaining())

	hit := m.button(m.theme.HitButton, "HIT", core.Hit)
	miss := m.button(m.theme.MissButton, "MISS", core.Miss)
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, hit, "   ", miss)

	return lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		clock,
		counter,
		m.theme.Muted.Render(tally),
		"",
		buttons,
		"",
		m.bestsLine(s.Bests),
	)
}

// button renders a throw button with the feedback of the last throw.
func (m Model) button(style lipgloss.Style, label string, t core.Throw) string {
	if m.flashing && m.lastThrow == t {
		style = style.Inherit(m.theme.Flash)
	}
	out := style.Render(label)
	if m.pulsing && m.lastThrow == t {
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, m.theme.Pulse.Render("+1"))
	}
	return out
}

func (m Model) bestsLine(report *core.BestsReport) string {
	switch {
	case report == nil:
		return m.theme.Muted.Render("loading personal bests...")
	case report.TotalGames == 0:
		return m.theme.Muted.Render("first session on record")
	}
	b := report.Bests
	return m.theme.Muted.Render(fmt.Sprintf("bests: streak %d · %.1f%% · %d hits (%d games)",
		b.MaxHitStreak, b.MaxHitPercentage, b.MaxHitsForQuantity, report.TotalGames))
}

func (m Model) viewCelebration(s session.Celebration) string {
	lines := []string{
		m.theme.Banner.Render("NEW RECORD!"),
		"",
		m.theme.Asset.Render(s.Asset),
		"",
	}
	for _, label := range s.Breaks.Labels() {
		lines = append(lines, m.theme.Record.Render("★ "+label))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) viewResults(s session.Results) string {
	cfg := s.Game.Config
	total := s.Game.Elapsed(m.now())

	stat := func(label, value string) string {
		return m.theme.StatLabel.Render(label) + m.theme.StatValue.Render(value)
	}

	lines := []string{
		m.theme.Subtitle.Render(string(cfg.Player)),
		m.theme.Muted.Render(fmt.Sprintf("%s - %d throws", cfg.Distance, cfg.Quantity)),
		"",
		stat("Hits", fmt.Sprintf("%d", s.Stats.Hits)),
		stat("Misses", fmt.Sprintf("%d", s.Stats.Misses)),
		stat("Hit percentage", fmt.Sprintf("%.1f%%", s.Stats.HitPercentage)),
		stat("Longest hit streak", fmt.Sprintf("%d", s.Stats.LongestHitStreak)),
		stat("Longest miss streak", fmt.Sprintf("%d", s.Stats.LongestMissStreak)),
		stat("Total time", core.FormatClock(total)),
		stat("Time per throw", fmt.Sprintf("%.1fs", core.PerThrow(total, s.Stats.Total()))),
	}
	if s.Breaks.Any() {
		lines = append(lines, "", m.theme.Record.Render("New: "+strings.Join(s.Breaks.Labels(), ", ")))
	}

	lines = append(lines, "")
	switch {
	case s.Submitting:
		lines = append(lines, m.spinner.View()+" Submitting...")
	case s.Submitted:
		lines = append(lines, m.theme.Success.Render(s.Message))
	case s.Err != nil:
		lines = append(lines, m.theme.Failure.Render(s.Message))
	default:
		lines = append(lines, m.theme.Muted.Render("press enter to save this session"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// currentStreak is the length of the run of t at the end of throws.
func currentStreak(throws []core.Throw, t core.Throw) int {
	n := 0
	for i := len(throws) - 1; i >= 0 && throws[i] == t; i-- {
		n++
	}
	return n
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
