// kubb is a practice counter for kubb throwing sessions.
//
// Usage:
//
//	kubb play                            - Count a session in the terminal (default)
//	kubb serve                           - Serve the counter over SSH
//	kubb api                             - Run the HTTP record service
//	kubb history                         - Browse past sessions
//	kubb bests <player> <distance> <n>   - Show personal bests
//	kubb options                         - List players, distances and quantities
//
// Global flags:
//
//	--config <path>    - Config file (default: ~/.kubb/config.yaml)
//	--store <name>     - Record store backend: sqlite or http
//	--db <path>        - SQLite database path
//	--api-url <url>    - Record service URL for the http backend
//	--log-file <path>  - Log file used while the TUI owns the terminal
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import store backends to register them
	_ "github.com/vovakirdan/kubb-counter/internal/recordapi"
	_ "github.com/vovakirdan/kubb-counter/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagStore   string
	flagDBPath  string
	flagAPIURL  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kubb",
	Short: "Kubb Counter - track your kubb throwing practice",
	Long: `Kubb Counter records hits and misses of a practice session, shows
live statistics and celebrates new personal records.

Available commands:
  play     - Count a session in the terminal (default)
  serve    - Serve the counter over SSH
  api      - Run the HTTP record service
  history  - Browse past sessions
  bests    - Show personal bests
  options  - List configured players, distances and quantities

Examples:
  kubb
  kubb play --store http --api-url http://kubb.local:8080
  kubb serve --ssh :2222
  kubb api --addr :8080
  kubb history --player Louise --plain
  kubb bests Samuel "4 Meter" 50`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Record store backend (sqlite, http)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Record service URL for the http backend")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for the terminal UI")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bestsCmd)
	rootCmd.AddCommand(optionsCmd)
}
