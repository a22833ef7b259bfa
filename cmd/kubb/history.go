package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/platform/tui"
)

var (
	flagHistoryPlayer   string
	flagHistoryDistance string
	flagHistoryLimit    int
	flagHistoryPlain    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past sessions",
	Long: `Show past sessions, most recent first.

The interactive view cycles players with Left/Right and distances with Tab.
When both a player and a distance are selected, their personal bests are
shown above the table. History needs the local sqlite store.

Examples:
  kubb history
  kubb history --player Louise --distance "8 Meter"
  kubb history --plain --limit 10`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only sessions of this player")
	historyCmd.Flags().StringVar(&flagHistoryDistance, "distance", "", "Only sessions at this distance")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 50, "Maximum number of sessions")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print a plain table instead of the interactive view")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	backend := openStore(cfg)
	defer backend.Close()

	store, ok := backend.(tui.HistoryStore)
	if !ok {
		fatalf("the %s store cannot list sessions; use --store sqlite", cfg.Store.Backend)
	}

	filter := tui.HistoryFilter{
		Player:   core.Player(flagHistoryPlayer),
		Distance: core.Distance(flagHistoryDistance),
		Quantity: cfg.Defaults.Quantity,
		Limit:    flagHistoryLimit,
	}

	if flagHistoryPlain {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
		defer cancel()

		records, err := store.ListSessions(ctx, filter.Player, filter.Distance, filter.Limit)
		if err != nil {
			fatalf("retrieving sessions: %v", err)
		}
		if err := tui.WriteHistory(os.Stdout, records); err != nil {
			fatalf("%v", err)
		}
		return
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	model := tui.NewHistoryModel(store, cfg.PlayerList(), cfg.DistanceList(), filter, width, height)
	if err := tui.RunHistory(model); err != nil {
		fatalf("running history view: %v", err)
	}
}
