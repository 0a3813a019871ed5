// Package logging configures the charmbracelet/log loggers tsxflat writes
// diagnostics with. Diagnostics always go to stderr so stdout carries only
// command output.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide default, swapped by SetDefault.
var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at level. Unknown levels mean info.
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(parseLevel(level))
	return logger
}

// NewInteractive returns an info logger prefixed with the program name, for
// messages addressed to a person, such as the result of init.
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "tsxflat"})
	logger.SetLevel(log.InfoLevel)
	return logger
}

// parseLevel accepts charmbracelet level names plus "warning".
func parseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Default returns the process-wide logger, creating an info logger on
// first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger; --debug uses it.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}
