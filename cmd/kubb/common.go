package main

import (
	"fmt"
	"os"

	"github.com/vovakirdan/kubb-counter/internal/config"
	"github.com/vovakirdan/kubb-counter/internal/registry"
)

// fatalf prints an error in the usual "Error: ..." form and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies the global flags on top.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("loading config: %v", err)
	}

	if flagStore != "" {
		cfg.Store.Backend = flagStore
	}
	if flagDBPath != "" {
		cfg.Store.DBPath = flagDBPath
	}
	if flagAPIURL != "" {
		cfg.Store.APIURL = flagAPIURL
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	return cfg
}

// openStore opens the configured record store backend.
func openStore(cfg config.Config) registry.Backend {
	store, err := registry.Open(cfg.Store.Backend, registry.Options{
		DBPath:  cfg.Store.DBPath,
		APIURL:  cfg.Store.APIURL,
		Timeout: cfg.Store.Timeout,
	})
	if err != nil {
		fatalf("opening %s record store: %v", cfg.Store.Backend, err)
	}
	return store
}
