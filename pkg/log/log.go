package log

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

var DebugLevel = log.DebugLevel

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// SetDebug toggles debug output for the package logger
func SetDebug(debug bool) {
	if debug {
		Logger.SetLevel(log.DebugLevel)
		return
	}
	Logger.SetLevel(log.InfoLevel)
}

// SetOutput redirects the package logger, used by tests to capture warnings
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// Debug logs a debug message.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg interface{}, keyvals ...interface{}) {
	if Logger.GetLevel() == DebugLevel {
		Logger.Info(msg, keyvals...)
		return
	}

	Logger.Print(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Infof logs an info message with formatting.
func Infof(format string, args ...interface{}) {
	if Logger.GetLevel() == DebugLevel {
		Logger.Infof(format, args...)
		return
	}

	Logger.Printf(format, args...)
}

// Warnf logs a warning message with formatting.
func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}
