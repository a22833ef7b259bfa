package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/kubb-counter/internal/logging"
	"github.com/vovakirdan/kubb-counter/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Count a practice session",
	Long: `Start the counter in the terminal.

Controls:
  Up/Down      - Choose setting (setup)
  Left/Right   - Change value (setup)
  Enter        - Start session / submit result
  H / Left     - Hit
  M / Right    - Miss
  Esc          - Abandon session / start over
  Q/Ctrl+C     - Quit

Logs go to the configured log file since the terminal belongs to the UI.

Examples:
  kubb play
  kubb play --store http --api-url http://kubb.local:8080
  kubb play --db ./practice.db --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		fatalf("opening log file: %v", err)
	}
	defer logFile.Close()
	logger := logging.New(logFile, "kubb", logging.Level(cfg.Log.Level, flagDebug))

	store := openStore(cfg)
	defer store.Close()
	logger.Info("starting counter", "store", cfg.Store.Backend)

	// Get terminal size early so the first frame is laid out
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	model := tui.NewModel(cfg, store, logger).WithSize(width, height)
	if err := tui.Run(model); err != nil {
		logger.Error("counter failed", "error", err)
		fatalf("running counter: %v", err)
	}
}
