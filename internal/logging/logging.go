// Package logging carries the logger contract shared by every component.
// Configuration problems (missing parsers, unknown field types, runaway
// notifier recursion) are reported as warnings and never surface as panics.
package logging

import (
	"fmt"

	"github.com/untillpro/goutils/logger"
)

// Logger is the minimal surface components log through.
type Logger interface {
	Warning(args ...any)
	Verbose(args ...any)
}

// Default returns a Logger backed by the goutils global logger.
func Default() Logger {
	return goutilsLogger{}
}

// Nop discards everything.
func Nop() Logger {
	return nopLogger{}
}

// OrDefault returns l, or Default when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}

// SetVerbose raises or restores the global goutils level.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLogLevel(logger.LogLevelVerbose)
		return
	}
	logger.SetLogLevel(logger.LogLevelWarning)
}

type goutilsLogger struct{}

func (goutilsLogger) Warning(args ...any) { logger.Warning(args...) }
func (goutilsLogger) Verbose(args ...any) { logger.Verbose(args...) }

type nopLogger struct{}

func (nopLogger) Warning(...any) {}
func (nopLogger) Verbose(...any) {}

// Recorder keeps every message in memory; tests use it to assert warnings.
type Recorder struct {
	Warnings []string
	Verboses []string
}

// Warning records a warning line.
func (r *Recorder) Warning(args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprint(args...))
}

// Verbose records a verbose line.
func (r *Recorder) Verbose(args ...any) {
	r.Verboses = append(r.Verboses, fmt.Sprint(args...))
}
