package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kubb-counter/internal/logging"
	"github.com/vovakirdan/kubb-counter/internal/recordapi"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the HTTP record service",
	Long: `Serve the record store over HTTP so several counters can share it.

Endpoints:
  GET  /api/records?playerName=&distance=&quantity=   Personal bests
  POST /api/sessions                                  Submit a finished session
  GET  /healthz                                       Liveness
  GET  /metrics                                       Prometheus metrics

The service always stores sessions in the local SQLite database.
Counters reach it with --store http --api-url http://<host>:<port>.

Examples:
  kubb api
  kubb api --addr :9090 --db /var/lib/kubb/kubb.db`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagAPIAddr != "" {
		cfg.API.Addr = flagAPIAddr
	}
	// The service is the remote end of the http backend.
	cfg.Store.Backend = "sqlite"
	if !flagDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.New(os.Stderr, "kubb-api", logging.Level(cfg.Log.Level, flagDebug))

	store := openStore(cfg)
	defer store.Close()

	server := recordapi.NewServer(store, recordapi.Options{
		RateLimit:    cfg.API.RateLimit,
		RateBurst:    cfg.API.RateBurst,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		Gzip:         cfg.API.Gzip,
		Logger:       logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.API.Addr); err != nil {
		logger.Error("record service failed", "error", err)
		fatalf("record service: %v", err)
	}
	logger.Info("Record service stopped")
}
