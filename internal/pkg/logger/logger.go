// Package logger is the standard-library adapter behind ports.Logger.
// Output is gated on a verbose flag: off by default, turned on at startup by
// VOX_DEBUG or per invocation by the speak command's --debug flag.
package logger

import (
	"log"
)

// StdLogger writes tagged lines through Go's log package.
type StdLogger struct {
	verbose bool
}

// NewStd creates a StdLogger.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose}
}

// SetVerbose flips verbosity at runtime; the --debug flag uses this to make a
// single invocation verbose without rebuilding the dependency graph.
func (l *StdLogger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	log.Println("[ERROR]", msg, err, fields)
}
