// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath points at the SQLite database file. Empty keeps an in-memory
	// database, useful for local runs.
	DBPath string `koanf:"db_path"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// DefaultLeaderboardLimit applies when a query omits limit.
	DefaultLeaderboardLimit int `koanf:"default_leaderboard_limit"`

	// RegattaTopN sets how many runs the regatta view returns.
	RegattaTopN int `koanf:"regatta_top_n"`

	// StoreBusyTimeoutMS bounds how long a statement waits for the
	// serialized store connection before failing busy.
	StoreBusyTimeoutMS int `koanf:"store_busy_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		DBPath:                  "",
		MaxLeaderboardLimit:     100,
		DefaultLeaderboardLimit: 20,
		RegattaTopN:             10,
		StoreBusyTimeoutMS:      5000,
	}
}
