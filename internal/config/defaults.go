package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/kubb.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It mirrors defaults/kubb.yaml and is used if the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Players:    []string{"Samuel", "Isabelle", "Louise", "Sophie"},
		Distances:  []string{"4 Meter", "8 Meter"},
		Quantities: []int{30, 50, 100},
		Defaults: DefaultsConfig{
			Player:   "Samuel",
			Distance: "4 Meter",
			Quantity: 50,
		},
		Timing: TimingConfig{
			CelebrationDelay: 5 * time.Second,
			ResetDelay:       2 * time.Second,
			TickInterval:     time.Second,
		},
		Effects: EffectsConfig{
			CelebrationAssets: []string{"\\o/   \\o/   \\o/\n |     |     |\n/ \\   / \\   / \\\n"},
			PulsePlayers:      []string{"Isabelle"},
			PulseDuration:     800 * time.Millisecond,
			FlashDuration:     300 * time.Millisecond,
		},
		Store: StoreConfig{
			Backend: "sqlite",
			DBPath:  "~/.kubb/kubb.db",
			APIURL:  "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		API: APIConfig{
			Addr:         ":8080",
			RateLimit:    5,
			RateBurst:    20,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			Gzip:         true,
		},
		SSH: SSHConfig{
			Addr:        ":23234",
			HostKeyPath: "~/.kubb/ssh_host_ed25519",
		},
		Log: LogConfig{
			File:  "~/.kubb/kubb.log",
			Level: "info",
		},
	}
}
