package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kubb-counter/internal/registry"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List configured players, distances and quantities",
	Long:  `Shows the values selectable on the setup screen and the available record stores.`,
	Args:  cobra.NoArgs,
	Run:   runOptions,
}

func runOptions(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	mark := func(value, def string) string {
		if value == def {
			return value + " *"
		}
		return value
	}

	fmt.Println("Setup options (* = default):")
	fmt.Println()
	fmt.Printf("  %-10s %s\n", "Players", strings.Join(lo.Map(cfg.Players, func(p string, _ int) string {
		return mark(p, cfg.Defaults.Player)
	}), ", "))
	fmt.Printf("  %-10s %s\n", "Distances", strings.Join(lo.Map(cfg.Distances, func(d string, _ int) string {
		return mark(d, cfg.Defaults.Distance)
	}), ", "))
	fmt.Printf("  %-10s %s\n", "Throws", strings.Join(lo.Map(cfg.Quantities, func(q int, _ int) string {
		return mark(strconv.Itoa(q), strconv.Itoa(cfg.Defaults.Quantity))
	}), ", "))

	fmt.Println()
	fmt.Println("Record stores:")
	fmt.Println()
	for _, b := range registry.List() {
		fmt.Printf("  %-10s %s\n", mark(b.Name, cfg.Store.Backend), b.Description)
	}
}
