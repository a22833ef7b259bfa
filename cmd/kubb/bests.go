package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/platform/tui"
)

var bestsCmd = &cobra.Command{
	Use:   "bests <player> <distance> <quantity>",
	Short: "Show personal bests",
	Long: `Display the personal bests of a player at a distance.

The most-hits record only counts sessions with the same number of throws.

Examples:
  kubb bests Samuel "4 Meter" 50
  kubb bests Isabelle "8 Meter" 30 --store http`,
	Args: cobra.ExactArgs(3),
	Run:  runBests,
}

func runBests(_ *cobra.Command, args []string) {
	player, distance := core.Player(args[0]), core.Distance(args[1])
	quantity, err := strconv.Atoi(args[2])
	if err != nil || quantity <= 0 {
		fatalf("quantity must be a positive number, got %q", args[2])
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	defer cancel()

	report, err := store.FetchBests(ctx, player, distance, quantity)
	if err != nil {
		fatalf("retrieving bests: %v", err)
	}

	fmt.Printf("Personal bests - %s, %s\n", player, distance)
	fmt.Println()

	if report.TotalGames == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'kubb play' and submit a session to set the first records!")
		return
	}

	fmt.Printf("  %-24s %d\n", "Games", report.TotalGames)
	fmt.Printf("  %-24s %d\n", "Longest hit streak", report.Bests.MaxHitStreak)
	fmt.Printf("  %-24s %.1f%%\n", "Highest hit percentage", report.Bests.MaxHitPercentage)
	fmt.Printf("  %-24s %d\n", fmt.Sprintf("Most hits (%d throws)", quantity), report.Bests.MaxHitsForQuantity)
	fmt.Println()
	fmt.Println(tui.FormatBests(report, quantity))
}
