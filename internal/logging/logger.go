// Package logging configures the process-wide structured logger. Output
// goes to a file because stdout belongs to the terminal UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug for detailed troubleshooting information.
	LevelDebug LogLevel = "debug"
	// LevelInfo for general operational information.
	LevelInfo LogLevel = "info"
	// LevelWarn for potentially harmful situations.
	LevelWarn LogLevel = "warn"
	// LevelError for error events that might still allow the application to continue.
	LevelError LogLevel = "error"
)

// DefaultLogPath returns the default log file location,
// ~/.config/bugboard/bugboard.log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "bugboard.log")
	}
	return filepath.Join(home, ".config", "bugboard", "bugboard.log")
}

// LevelFromEnv reads BUGBOARD_LOG_LEVEL, defaulting to info.
func LevelFromEnv() LogLevel {
	s := strings.ToLower(os.Getenv("BUGBOARD_LOG_LEVEL"))
	if s == "" {
		return LevelInfo
	}
	return LogLevel(s)
}

// SetupFile opens (or creates) the log file at path and installs it as the
// default logger's destination. The caller owns the returned file.
func SetupFile(path string, level LogLevel) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	Setup(f, level)
	return f, nil
}

// Setup configures the default logger with the specified output and level.
func Setup(w io.Writer, level LogLevel) {
	var logLevel slog.Level
	switch level {
	case LevelDebug:
		logLevel = slog.LevelDebug
	case LevelInfo:
		logLevel = slog.LevelInfo
	case LevelWarn:
		logLevel = slog.LevelWarn
	case LevelError:
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

// MaskSensitive masks credential values for logging.
func MaskSensitive(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 4 {
		return "<set>"
	}
	return value[:4] + "..." + strings.Repeat("*", 3)
}
