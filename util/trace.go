package util

import (
	"context"
	"log/slog"
)

// LevelTrace is below Debug. Trace records are dropped unless a main installs
// a handler with this level.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs msg at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
