// Package config provides YAML-based configuration loading for the Kubb
// counter: the selectable players, distances and quantities, timings, the
// celebration assets, and settings for the store backends and servers.
package config

import (
	"time"

	"github.com/samber/lo"

	"github.com/vovakirdan/kubb-counter/internal/core"
	"github.com/vovakirdan/kubb-counter/internal/session"
)

// Config is the complete application configuration.
type Config struct {
	Players    []string       `yaml:"players"`
	Distances  []string       `yaml:"distances"`
	Quantities []int          `yaml:"quantities"`
	Defaults   DefaultsConfig `yaml:"defaults"`
	Timing     TimingConfig   `yaml:"timing"`
	Effects    EffectsConfig  `yaml:"effects"`
	Store      StoreConfig    `yaml:"store"`
	API        APIConfig      `yaml:"api"`
	SSH        SSHConfig      `yaml:"ssh"`
	Log        LogConfig      `yaml:"log"`
}

// DefaultsConfig is the configuration preselected on the setup screen.
type DefaultsConfig struct {
	Player   string `yaml:"player" env:"KUBB_DEFAULT_PLAYER"`
	Distance string `yaml:"distance" env:"KUBB_DEFAULT_DISTANCE"`
	Quantity int    `yaml:"quantity" env:"KUBB_DEFAULT_QUANTITY"`
}

// TimingConfig holds the session timers.
type TimingConfig struct {
	CelebrationDelay time.Duration `yaml:"celebration_delay" env:"KUBB_CELEBRATION_DELAY"`
	ResetDelay       time.Duration `yaml:"reset_delay" env:"KUBB_RESET_DELAY"`
	TickInterval     time.Duration `yaml:"tick_interval"`
}

// EffectsConfig holds purely cosmetic presentation settings.
type EffectsConfig struct {
	CelebrationAssets []string      `yaml:"celebration_assets"`
	PulsePlayers      []string      `yaml:"pulse_players"` // Players who get the "+1" pulse
	PulseDuration     time.Duration `yaml:"pulse_duration"`
	FlashDuration     time.Duration `yaml:"flash_duration"` // Button highlight after a throw
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	Backend string        `yaml:"backend" env:"KUBB_STORE"`   // "sqlite" or "http"
	DBPath  string        `yaml:"db_path" env:"KUBB_DB_PATH"` // SQLite file
	APIURL  string        `yaml:"api_url" env:"KUBB_API_URL"` // Record service base URL
	Timeout time.Duration `yaml:"timeout" env:"KUBB_STORE_TIMEOUT"`
}

// APIConfig configures the HTTP record service.
type APIConfig struct {
	Addr         string        `yaml:"addr" env:"KUBB_API_ADDR"`
	RateLimit    float64       `yaml:"rate_limit" env:"KUBB_API_RATE_LIMIT"` // Requests per second per client IP
	RateBurst    int           `yaml:"rate_burst" env:"KUBB_API_RATE_BURST"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Gzip         bool          `yaml:"gzip" env:"KUBB_API_GZIP"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Addr        string `yaml:"addr" env:"KUBB_SSH_ADDR"`
	HostKeyPath string `yaml:"host_key_path" env:"KUBB_SSH_HOST_KEY"`
}

// LogConfig configures logging.
type LogConfig struct {
	File  string `yaml:"file" env:"KUBB_LOG_FILE"` // Used when the terminal belongs to the TUI
	Level string `yaml:"level" env:"KUBB_LOG_LEVEL"`
}

// PlayerList returns the configured players as core values.
func (c Config) PlayerList() []core.Player {
	return lo.Map(c.Players, func(p string, _ int) core.Player { return core.Player(p) })
}

// DistanceList returns the configured distances as core values.
func (c Config) DistanceList() []core.Distance {
	return lo.Map(c.Distances, func(d string, _ int) core.Distance { return core.Distance(d) })
}

// DefaultGame returns the preselected game configuration.
func (c Config) DefaultGame() core.GameConfig {
	return core.GameConfig{
		Player:   core.Player(c.Defaults.Player),
		Distance: core.Distance(c.Defaults.Distance),
		Quantity: c.Defaults.Quantity,
	}
}

// PulseFor reports whether player gets the "+1" pulse after a throw.
func (c Config) PulseFor(player core.Player) bool {
	return lo.Contains(c.Effects.PulsePlayers, string(player))
}

// SessionOptions builds controller options from the configuration.
// Clock, randomness and IDs are left to the controller's defaults.
func (c Config) SessionOptions() session.Options {
	return session.Options{
		Choices: session.Choices{
			Players:    c.PlayerList(),
			Distances:  c.DistanceList(),
			Quantities: c.Quantities,
		},
		Defaults:         c.DefaultGame(),
		Assets:           c.Effects.CelebrationAssets,
		CelebrationDelay: c.Timing.CelebrationDelay,
		ResetDelay:       c.Timing.ResetDelay,
		TickInterval:     c.Timing.TickInterval,
	}
}
