package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and is used for the most granular
// events (raw payloads).
const LevelTrace = slog.LevelDebug - 4

// ParseLogLevel maps trace|debug|info|warn|warning|error to a slog.Level.
// Unknown or empty input yields slog.LevelInfo.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogLevelFromEnv reads SKILLEDU_LOG_LEVEL, then LOG_LEVEL.
func GetLogLevelFromEnv() slog.Level {
	if level := os.Getenv("SKILLEDU_LOG_LEVEL"); level != "" {
		return ParseLogLevel(level)
	}
	return ParseLogLevel(os.Getenv("LOG_LEVEL"))
}
