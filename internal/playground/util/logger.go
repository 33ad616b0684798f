package util

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

func InitLogger() {
	InitLoggerWithLevel(os.Getenv("LOG_LEVEL"))
}

// InitLoggerWithLevel installs a JSON logger on stderr so stdout stays free
// for playground and tour output.
func InitLoggerWithLevel(level string) {
	Logger = NewLogger(os.Stderr, level)
	slog.SetDefault(Logger)
}

func NewLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func GetLogger() *slog.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
