// Package logging provides the tool's logging infrastructure built on
// charmbracelet/log.
//
// It wraps charmbracelet/log in a small factory so every package logs with a
// component prefix and a shared level configuration. All log output goes to
// stderr; stdout stays clean because the generated YAML may be piped.
//
// Usage:
//
//	// During CLI initialization (PersistentPreRun):
//	logging.Setup(verbose, quiet, jsonFormat)
//
//	// In each package:
//	logger := logging.New("gw2api")
//	logger.Debug("fetching", "url", uri)
//
// Setup must be called before New: charmbracelet/log child loggers copy
// state at creation time, so later changes to the default logger do not
// propagate to existing children.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level aliases for charmbracelet/log levels, re-exported so consumers do
// not need to import charmbracelet/log directly.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
	LevelFatal = log.FatalLevel
)

// Setup configures the global logging defaults. Call once during CLI
// initialization.
//
// verbose sets the level to Debug (per-request fetch logging); quiet sets
// it to Error. If both are set, quiet wins so --quiet always suppresses
// noise in scripted runs. jsonFormat switches to NDJSON output for log
// aggregation.
func Setup(verbose, quiet, jsonFormat bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if quiet {
		level = log.ErrorLevel
	}

	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if jsonFormat {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
}

// New creates a logger with the given component prefix. The returned logger
// inherits level and output settings from the default logger at creation
// time. An empty component produces a logger without a prefix.
func New(component string) *log.Logger {
	return log.WithPrefix(component)
}

// SetOutput overrides the output writer for the default logger. Primarily
// useful in tests to capture output with a bytes.Buffer; restore the
// original writer with t.Cleanup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}
