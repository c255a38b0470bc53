package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok, "empty context has no request id")

	id := GenerateRequestID()
	assert.NotEmpty(t, id)

	ctx = WithRequestID(ctx, id)
	got, ok := RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestConfigLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Level: tt.level}.LogLevel(), "level %q", tt.level)
	}
}

func TestConfigIsJSON(t *testing.T) {
	assert.True(t, Config{Format: "JSON"}.IsJSON())
	assert.False(t, Config{Format: "text"}.IsJSON())
}
