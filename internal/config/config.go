package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the runtime configuration for the browser.
type Config struct {
	// CacheTTL bounds how long fetched commit, branch and author lists
	// stay valid before the next access goes back to the repository.
	CacheTTL time.Duration

	// LogFile receives structured logs; stdout belongs to the TUI.
	// Empty means logging is discarded.
	LogFile string

	LogLevel logrus.Level
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CacheTTL: 5 * time.Minute,
		LogFile:  "",
		LogLevel: logrus.InfoLevel,
	}
}
