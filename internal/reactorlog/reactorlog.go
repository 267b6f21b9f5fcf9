// Package reactorlog is a small leveled logger used by the engine to report
// dependency-violation diagnostics. It mirrors the three-level info/warn/error
// design of the original reaction library's Log helper, built on the
// standard log package the way every cmd in this codebase already does.
package reactorlog

import (
	"log"
	"os"
)

// Logger writes leveled, prefixed lines to an underlying *log.Logger.
type Logger struct {
	l *log.Logger
}

// New wraps std, defaulting to stderr with standard flags and no prefix when
// std is nil.
func New(std *log.Logger) *Logger {
	if std == nil {
		std = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Logger{l: std}
}

// Default is the package-level logger used when callers don't supply one.
var Default = New(nil)

func (lg *Logger) Info(format string, args ...any) {
	if lg == nil {
		return
	}
	lg.l.Printf("[INFO] "+format, args...)
}

func (lg *Logger) Warn(format string, args ...any) {
	if lg == nil {
		return
	}
	lg.l.Printf("[WARN] "+format, args...)
}

func (lg *Logger) Error(format string, args ...any) {
	if lg == nil {
		return
	}
	lg.l.Printf("[ERROR] "+format, args...)
}
