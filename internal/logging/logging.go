// Package logging builds the zerolog logger shared by the CLI and the fetch core.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/Nefnief-tech/transit-app-test/internal/config"
)

// New creates a logger writing to w.
// level may be "trace", "debug", "info", "warn" or "error" (default "info").
// format may be "console" or "json" (default "console").
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(format) != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(w),
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Open creates a logger from config. Output goes to cfg.File when set,
// otherwise to fallback. The returned closer must be called on exit.
func Open(cfg config.LogConfig, fallback io.Writer) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return New(fallback, cfg.Level, cfg.Format), io.NopCloser(nil), nil
	}

	// #nosec G304 -- path comes from the user's own configuration
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	return New(f, cfg.Level, cfg.Format), f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
