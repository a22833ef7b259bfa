package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Backends are the record store backends a config may name.
var Backends = []string{"sqlite", "http"}

// Load loads the application configuration.
// Search order: customPath -> ~/.kubb/config.yaml -> ./configs/kubb.yaml -> embedded default.
// Files are applied on top of the embedded default, so they may be partial.
// A .env file in the working directory and KUBB_* environment variables are
// applied last, then the result is validated.
func Load(customPath string) (Config, error) {
	cfg, err := embeddedDefault()
	if err != nil {
		return cfg, err
	}

	switch {
	case customPath != "":
		// Try custom path first
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}

	default:
		for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "kubb.yaml")} {
			if path == "" {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			candidate := cfg
			if err := yaml.Unmarshal(data, &candidate); err == nil {
				cfg = candidate
				break
			}
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// embeddedDefault parses the embedded default YAML.
func embeddedDefault() (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseEnv overlays settings from KUBB_* environment variables.
// Variables that are not set leave the field unchanged.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// loadDotEnv loads variables from path without overriding the environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(len(c.Players) > 0, "no players configured")
	check(len(lo.Uniq(c.Players)) == len(c.Players), "duplicate players")
	check(!lo.ContainsBy(c.Players, isBlank), "blank player name")

	check(len(c.Distances) > 0, "no distances configured")
	check(len(lo.Uniq(c.Distances)) == len(c.Distances), "duplicate distances")
	check(!lo.ContainsBy(c.Distances, isBlank), "blank distance")

	check(len(c.Quantities) > 0, "no quantities configured")
	check(lo.EveryBy(c.Quantities, func(q int) bool { return q > 0 }), "quantities must be positive")

	check(lo.Contains(c.Players, c.Defaults.Player), "default player %q is not a configured player", c.Defaults.Player)
	check(lo.Contains(c.Distances, c.Defaults.Distance), "default distance %q is not a configured distance", c.Defaults.Distance)
	check(lo.Contains(c.Quantities, c.Defaults.Quantity), "default quantity %d is not a configured quantity", c.Defaults.Quantity)

	check(c.Timing.CelebrationDelay > 0, "celebration_delay must be positive")
	check(c.Timing.ResetDelay > 0, "reset_delay must be positive")
	check(c.Timing.TickInterval > 0, "tick_interval must be positive")

	check(len(c.Effects.CelebrationAssets) > 0, "at least one celebration asset is required")
	check(lo.Every(c.Players, c.Effects.PulsePlayers), "pulse_players must be configured players")

	check(lo.Contains(Backends, c.Store.Backend), "unknown store backend %q (want one of %s)", c.Store.Backend, strings.Join(Backends, ", "))
	check(c.Store.Timeout > 0, "store timeout must be positive")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kubb", filename)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
