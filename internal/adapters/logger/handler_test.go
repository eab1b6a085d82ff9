package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hekit/internal/adapters/logger"
)

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	lg := slog.New(h.WithGroup("stage").WithAttrs([]slog.Attr{slog.String("name", "build")}))

	lg.Info("started", "instance", "seal/v1")

	assert.Equal(t, "started stage.name=build stage.instance=seal/v1\n", buf.String())
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	lg.Info("hidden")
	lg.Debug("hidden")
	lg.Warn("shown")

	assert.Equal(t, "! shown\n", buf.String())
}
