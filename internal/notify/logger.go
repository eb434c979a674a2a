package notify

import (
	"context"
	"log/slog"
)

// Logger is a Sink that writes alerts to a slog.Logger. Used for dev
// runs and as the fallback when no webhook is configured.
type Logger struct {
	log *slog.Logger
}

// NewLogger creates a logging sink. A nil logger uses slog.Default().
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log}
}

// Notify logs a stock alert at info level.
func (l *Logger) Notify(_ context.Context, text string) error {
	l.log.Info("stock alert", "text", text)
	return nil
}

// Health logs an operational message at debug level.
func (l *Logger) Health(_ context.Context, text string) error {
	l.log.Debug("health", "text", text)
	return nil
}
