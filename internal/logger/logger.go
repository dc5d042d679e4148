package logger

import (
	"io"
	"log/slog"
	"os"

	"go.uber.org/fx/fxevent"

	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/config"
)

// New creates a JSON slog.Logger honouring the configured level.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(os.Stdout, cfg.LogLevel)
}

func newWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// NewFxLogger routes fx container events through the application logger.
func NewFxLogger(logger *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
}
