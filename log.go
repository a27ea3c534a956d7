package ludo

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.TimeOnly,
	Prefix:          "ludo",
	Level:           log.InfoLevel,
})

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// SetLogger replaces the package logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// SetLogLevel parses level ("debug", "info", "warn", "error", "fatal") and
// applies it to the package logger.
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
	}
	logger.SetLevel(lvl)
	return nil
}
