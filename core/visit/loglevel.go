package visit

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogLevel is the severity used to report duplicate conflicts.
type LogLevel string

const (
	LevelDebug   LogLevel = "debug"
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// ParseLogLevel accepts debug, info, warning (or warn) and error in any case.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn", "":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

// UnmarshalText lets env parsing validate the level.
func (l *LogLevel) UnmarshalText(text []byte) error {
	lvl, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = lvl
	return nil
}

// Validate reports whether l is a known level. The zero value is valid and means warning.
func (l LogLevel) Validate() error {
	_, err := ParseLogLevel(string(l))
	return err
}

// Slog maps the level to slog. Unknown values map to warn.
func (l LogLevel) Slog() slog.Level {
	lvl, _ := ParseLogLevel(string(l))
	switch lvl {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
