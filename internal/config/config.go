// Package config holds the runtime configuration consumed by the demo
// driver. Values are populated from flags and environment by the cmd layer.
package config

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// DemoConfig configures a driver run.
type DemoConfig struct {
	// Payloads are appended in order by the demo command.
	Payloads []string

	// Count is the number of generated blocks appended by the seed command.
	Count uint64

	// JSON selects line-delimited JSON output instead of the console table.
	JSON bool

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// PollInterval is how often the follow loop checks for new blocks.
	PollInterval time.Duration

	// VerifyConcurrency bounds the workers used by chain verification.
	// Zero selects one worker per CPU.
	VerifyConcurrency int
}

func (c DemoConfig) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.PollInterval < 0 {
		return errors.Errorf("poll interval must not be negative, got %s", c.PollInterval)
	}
	if c.VerifyConcurrency < 0 {
		return errors.Errorf("verify concurrency must not be negative, got %d", c.VerifyConcurrency)
	}
	return nil
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Errorf("unknown log level %q", level)
	}
}
