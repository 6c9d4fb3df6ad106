// Package logger holds the process-wide logger used before dependencies are wired.
package logger

import "gitlab.com/fcv-2025.net/codejudge/internal/adapter/logging"

var Logger = logging.NewZapLogger(false)

// Init replaces the global logger once the debug setting is known.
func Init(debug bool) {
	Logger = logging.NewZapLogger(debug)
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
