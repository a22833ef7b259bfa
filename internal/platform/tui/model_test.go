package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kubb-counter/internal/config"
	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/session"
)

type fakeStore struct {
	mu        sync.Mutex
	report    core.BestsReport
	fetchErr  error
	submitErr error
	submitted []core.Summary
	records   []core.SessionRecord
}

func (f *fakeStore) FetchBests(context.Context, core.Player, core.Distance, int) (core.BestsReport, error) {
	return f.report, f.fetchErr
}

func (f *fakeStore) SubmitSession(_ context.Context, s core.Summary) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, s)
	return "rec-1", nil
}

func (f *fakeStore) ListSessions(_ context.Context, player core.Player, _ core.Distance, _ int) ([]core.SessionRecord, error) {
	var out []core.SessionRecord
	for _, r := range f.records {
		if player == "" || r.Summary.Player == player {
			out = append(out, r)
		}
	}
	return out, nil
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Quantities = []int{2, 30, 50, 100}
	cfg.Defaults.Quantity = 2
	cfg.Timing.TickInterval = time.Millisecond
	cfg.Timing.CelebrationDelay = time.Millisecond
	cfg.Timing.ResetDelay = time.Millisecond
	cfg.Effects.PulseDuration = time.Millisecond
	cfg.Effects.FlashDuration = time.Millisecond
	return cfg
}

func newTestModel(t *testing.T, store core.RecordStore) (Model, *strings.Builder) {
	t.Helper()
	var buf strings.Builder
	return NewModel(testConfig(), store, log.New(&buf)), &buf
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) (Model, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = next.(Model)
		cmds = append(cmds, cmd)
	}
	return m, cmds
}

// drain runs cmd and returns every EventMsg it produces, descending into
// batches. Timers are short in tests.
func drain(cmd tea.Cmd) []EventMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []EventMsg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	case EventMsg:
		return []EventMsg{msg}
	}
	return nil
}

func TestSetupKeysChangeSelection(t *testing.T) {
	m, _ := newTestModel(t, &fakeStore{})

	m, _ = press(m, "right")
	if got := m.Screen().(session.Setup).Draft.Player; got != "Isabelle" {
		t.Errorf("player after right = %q, want Isabelle", got)
	}

	m, _ = press(m, "left", "left")
	if got := m.Screen().(session.Setup).Draft.Player; got != "Sophie" {
		t.Errorf("player after wrapping left = %q, want Sophie", got)
	}

	m, _ = press(m, "down", "right")
	if got := m.Screen().(session.Setup).Draft.Distance; got != "8 Meter" {
		t.Errorf("distance = %q, want 8 Meter", got)
	}

	m, _ = press(m, "down", "right")
	if got := m.Screen().(session.Setup).Draft.Quantity; got != 30 {
		t.Errorf("quantity = %d, want 30", got)
	}

	m, _ = press(m, "down")
	if m.row != rowPlayer {
		t.Errorf("row after wrapping down = %d, want %d", m.row, rowPlayer)
	}
}

func TestStartRunsEffects(t *testing.T) {
	store := &fakeStore{report: core.BestsReport{Bests: core.Bests{MaxHitStreak: 1}, TotalGames: 3}}
	m, _ := newTestModel(t, store)

	m, cmds := press(m, "enter")
	active, ok := m.Screen().(session.Active)
	if !ok {
		t.Fatalf("screen = %s, want active", m.Screen().Name())
	}

	var sawBests, sawTick bool
	for _, msg := range drain(cmds[0]) {
		switch ev := msg.Event.(type) {
		case session.BestsLoaded:
			sawBests = ev.GameID == active.Game.ID && ev.Report.TotalGames == 3
		case session.Tick:
			sawTick = ev.GameID == active.Game.ID
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if !sawBests || !sawTick {
		t.Fatalf("effects produced bests=%v tick=%v", sawBests, sawTick)
	}
	if m.Screen().(session.Active).Bests == nil {
		t.Error("bests not applied to the active screen")
	}
}

func TestThrowKeysAndFeedback(t *testing.T) {
	m, _ := newTestModel(t, &fakeStore{})
	m, _ = press(m, "right", "enter") // Isabelle gets the pulse

	m, _ = press(m, "h")
	if !m.flashing || !m.pulsing || m.lastThrow != core.Hit {
		t.Fatalf("feedback after hit: flashing=%v pulsing=%v last=%v", m.flashing, m.pulsing, m.lastThrow)
	}
	if !strings.Contains(m.View(), "+1") {
		t.Error("pulse not rendered")
	}

	next, _ := m.Update(flashEndMsg{seq: m.flashSeq - 1})
	m = next.(Model)
	if !m.flashing {
		t.Error("stale flash timer cleared the flash")
	}
	next, _ = m.Update(flashEndMsg{seq: m.flashSeq})
	m = next.(Model)
	next, _ = m.Update(pulseEndMsg{seq: m.pulseSeq})
	m = next.(Model)
	if m.flashing || m.pulsing {
		t.Error("feedback not cleared by its timers")
	}

	m, _ = press(m, "right")
	r, ok := m.Screen().(session.Results)
	if !ok {
		t.Fatalf("screen = %s, want results", m.Screen().Name())
	}
	if r.Stats.Hits != 1 || r.Stats.Misses != 1 {
		t.Errorf("stats = %+v", r.Stats)
	}
}

func TestCelebrationIgnoresKeys(t *testing.T) {
	m, _ := newTestModel(t, &fakeStore{})
	m, _ = press(m, "enter")
	id := m.Screen().(session.Active).Game.ID

	next, _ := m.Update(EventMsg{Event: session.BestsLoaded{GameID: id, Report: core.BestsReport{TotalGames: 1}}})
	m = next.(Model)
	m, _ = press(m, "h", "h")
	if _, ok := m.Screen().(session.Celebration); !ok {
		t.Fatalf("screen = %s, want celebration", m.Screen().Name())
	}

	m, _ = press(m, "enter", " ", "esc")
	if _, ok := m.Screen().(session.Celebration); !ok {
		t.Fatalf("screen after keys = %s, want celebration", m.Screen().Name())
	}

	next, _ = m.Update(EventMsg{Event: session.CelebrationEnded{GameID: id}})
	m = next.(Model)
	if _, ok := m.Screen().(session.Results); !ok {
		t.Errorf("screen after timer = %s, want results", m.Screen().Name())
	}
}

func TestActiveViewShowsRemainingThrows(t *testing.T) {
	m, _ := newTestModel(t, &fakeStore{})
	m, _ = press(m, "enter", "h")

	if !strings.Contains(m.View(), "1 left") {
		t.Errorf("remaining throws missing from view:\n%s", m.View())
	}
}

func TestNoPulseForOtherPlayers(t *testing.T) {
	m, _ := newTestModel(t, &fakeStore{})
	m, _ = press(m, "enter", "m") // Samuel

	if m.pulsing {
		t.Error("pulse shown for a player without it")
	}
	if !m.flashing || m.lastThrow != core.Miss {
		t.Error("flash missing after miss")
	}
}

func TestSubmitRoundTrip(t *testing.T) {
	store := &fakeStore{submitErr: errors.New("connection refused")}
	m, logs := newTestModel(t, store)
	m, _ = press(m, "enter", "h", "h")

	m, cmds := press(m, "enter")
	if r := m.Screen().(session.Results); !r.Submitting {
		t.Fatal("not submitting after enter")
	}
	if !strings.Contains(m.View(), "Submitting") {
		t.Error("spinner line missing while submitting")
	}

	for _, msg := range drain(cmds[0]) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	r := m.Screen().(session.Results)
	if r.Message != "Error: connection refused" {
		t.Errorf("message = %q", r.Message)
	}
	if !strings.Contains(logs.String(), "connection refused") {
		t.Errorf("submit failure not logged: %q", logs.String())
	}

	store.submitErr = nil
	m, cmds = press(m, "enter")
	var reset tea.Cmd
	for _, msg := range drain(cmds[0]) {
		next, cmd := m.Update(msg)
		m = next.(Model)
		reset = cmd
	}
	if r := m.Screen().(session.Results); !r.Submitted || r.Message != session.MsgSubmitted {
		t.Fatalf("results after retry = %+v", r)
	}
	if len(store.submitted) != 1 {
		t.Fatalf("submitted %d sessions, want 1", len(store.submitted))
	}

	for _, msg := range drain(reset) {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	if _, ok := m.Screen().(session.Setup); !ok {
		t.Errorf("screen after reset = %s, want setup", m.Screen().Name())
	}
}

func TestAbandonKey(t *testing.T) {
	m, _ := newTestModel(t, &fakeStore{})
	m, _ = press(m, "enter", "h", "esc")

	if _, ok := m.Screen().(session.Setup); !ok {
		t.Errorf("screen after esc = %s, want setup", m.Screen().Name())
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, &fakeStore{})
	m, cmds := press(m, "q")

	if !m.quitting {
		t.Error("model not quitting")
	}
	if _, ok := cmds[0]().(tea.QuitMsg); !ok {
		t.Error("q did not return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestEffectRunner(t *testing.T) {
	var buf strings.Builder
	store := &fakeStore{report: core.BestsReport{TotalGames: 2}}
	r := effectRunner{store: store, timeout: time.Second, logger: log.New(&buf)}

	tests := []struct {
		name   string
		effect session.Effect
		check  func(session.Event) bool
	}{
		{
			name:   "fetch bests",
			effect: session.FetchBests{GameID: "g1"},
			check: func(ev session.Event) bool {
				b, ok := ev.(session.BestsLoaded)
				return ok && b.GameID == "g1" && b.Report.TotalGames == 2 && b.Err == nil
			},
		},
		{
			name:   "ticker",
			effect: session.StartTicker{GameID: "g1", Interval: time.Millisecond},
			check: func(ev session.Event) bool {
				tk, ok := ev.(session.Tick)
				return ok && tk.GameID == "g1" && !tk.At.IsZero()
			},
		},
		{
			name:   "celebration end",
			effect: session.ScheduleCelebrationEnd{GameID: "g1", Delay: time.Millisecond},
			check: func(ev session.Event) bool {
				return ev == session.CelebrationEnded{GameID: "g1"}
			},
		},
		{
			name:   "submit",
			effect: session.SubmitSummary{GameID: "g1", Summary: core.Summary{Player: "Samuel"}},
			check: func(ev session.Event) bool {
				d, ok := ev.(session.SubmitDone)
				return ok && d.GameID == "g1" && d.ID == "rec-1" && d.Err == nil
			},
		},
		{
			name:   "reset",
			effect: session.ScheduleReset{GameID: "g1", Delay: time.Millisecond},
			check: func(ev session.Event) bool {
				return ev == session.ResetElapsed{GameID: "g1"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := r.run(tt.effect)
			if cmd == nil {
				t.Fatal("run() returned nil command")
			}
			msg, ok := cmd().(EventMsg)
			if !ok {
				t.Fatalf("command produced %T, want EventMsg", msg)
			}
			if !tt.check(msg.Event) {
				t.Errorf("unexpected event %#v", msg.Event)
			}
		})
	}

	if cmd := r.run(session.LogWarning{Message: "could not fetch bests", Keyvals: []any{"player", "Samuel"}}); cmd != nil {
		t.Error("LogWarning returned a command")
	}
	if !strings.Contains(buf.String(), "could not fetch bests") {
		t.Errorf("warning not logged: %q", buf.String())
	}
}

func TestEffectRunnerWithoutStore(t *testing.T) {
	r := effectRunner{logger: log.New(&strings.Builder{})}

	msg := r.run(session.FetchBests{GameID: "g1"})().(EventMsg)
	if b := msg.Event.(session.BestsLoaded); b.Err == nil {
		t.Error("fetch without store succeeded")
	}
	msg = r.run(session.SubmitSummary{GameID: "g1"})().(EventMsg)
	if d := msg.Event.(session.SubmitDone); d.Err == nil {
		t.Error("submit without store succeeded")
	}
}

func TestCycleValue(t *testing.T) {
	values := []int{30, 50, 100}
	tests := []struct {
		current, step, want int
	}{
		{30, 1, 50},
		{100, 1, 30},
		{30, -1, 100},
		{77, 1, 30},
	}
	for _, tt := range tests {
		if got := cycleValue(values, tt.current, tt.step); got != tt.want {
			t.Errorf("cycleValue(%d, %d) = %d, want %d", tt.current, tt.step, got, tt.want)
		}
	}
}

func TestHelpFollowsScreen(t *testing.T) {
	k := DefaultKeyMap()
	if got := k.helpFor(session.Active{}); len(got) != 4 {
		t.Errorf("active help has %d bindings, want 4", len(got))
	}
	if got := k.helpFor(session.Celebration{}); len(got) != 1 {
		t.Errorf("celebration help has %d bindings, want 1", len(got))
	}
	if got := k.helpFor(session.Results{Submitting: true}); len(got) != 1 {
		t.Errorf("help while submitting has %d bindings, want 1", len(got))
	}
}

func TestHistoryModel(t *testing.T) {
	now := time.Now()
	store := &fakeStore{
		report: core.BestsReport{Bests: core.Bests{MaxHitStreak: 4, MaxHitPercentage: 80, MaxHitsForQuantity: 8}, TotalGames: 2},
		records: []core.SessionRecord{
			{ID: "a", Summary: core.Summary{Player: "Samuel", Distance: "4 Meter", Quantity: 10, Hits: 8}, CreatedAt: now},
			{ID: "b", Summary: core.Summary{Player: "Louise", Distance: "4 Meter", Quantity: 10, Hits: 5}, CreatedAt: now},
		},
	}
	players := []core.Player{"Samuel", "Louise"}
	distances := []core.Distance{"4 Meter"}

	m := NewHistoryModel(store, players, distances, HistoryFilter{Quantity: 10}, 100, 30)
	if len(m.records) != 2 || m.bests != nil {
		t.Fatalf("unfiltered: records=%d bests=%v", len(m.records), m.bests)
	}

	next, _ := m.Update(keyMsg("right"))
	m = next.(HistoryModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.filter.Player != "Samuel" || m.filter.Distance != "4 Meter" {
		t.Fatalf("filter = %+v", m.filter)
	}
	if len(m.records) != 1 || m.bests == nil {
		t.Fatalf("filtered: records=%d bests=%v", len(m.records), m.bests)
	}
	if !strings.Contains(m.View(), "longest hit streak 4") {
		t.Error("bests missing from header")
	}
}

func TestWriteHistory(t *testing.T) {
	var b strings.Builder
	if err := WriteHistory(&b, nil); err != nil {
		t.Fatalf("WriteHistory() failed: %v", err)
	}
	if !strings.Contains(b.String(), "No sessions") {
		t.Errorf("empty output = %q", b.String())
	}

	b.Reset()
	records := []core.SessionRecord{{
		Summary:   core.Summary{Player: "Sophie", Distance: "8 Meter", Quantity: 30, Hits: 21, HitPercentage: 70, DurationSeconds: 125},
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}}
	if err := WriteHistory(&b, records); err != nil {
		t.Fatalf("WriteHistory() failed: %v", err)
	}
	for _, want := range []string{"PLAYER", "Sophie", "21/30", "70.0", "02:05"} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("output missing %q:\n%s", want, b.String())
		}
	}
}
