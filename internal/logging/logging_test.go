package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelWarn))

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	logger.Warn("loud")
	assert.Contains(t, buf.String(), `"loud"`)
}

func TestWithRenderID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	WithRenderID(logger, "abc-123").Info("tagged")
	assert.Contains(t, buf.String(), `"render_id":"abc-123"`)
}

func TestWithRenderIDEmpty(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo))

	WithRenderID(logger, "").Info("untagged")
	assert.NotContains(t, buf.String(), "render_id")
}
