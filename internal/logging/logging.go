// Package logging builds the slog handlers used across flowviz and tags
// loggers with per-render correlation IDs.
package logging

import (
	"io"
	"log/slog"
)

// NewHandler returns a JSON slog handler writing to w at the given level.
func NewHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// WithRenderID returns a logger whose records all carry the render
// correlation ID, so the warnings of one render pass can be grouped.
func WithRenderID(logger *slog.Logger, id string) *slog.Logger {
	if id == "" {
		return logger
	}
	return logger.With(slog.String("render_id", id))
}
