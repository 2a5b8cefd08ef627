package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Setup replaces the process default logger, so these tests do not run in parallel.

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	tests := []struct {
		level       string
		wantDebug   bool
		wantInfo    bool
		wantWarning bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "INFO", wantInfo: true},
		{level: "warn"},
		{level: "error"},
		{level: "verbose", wantInfo: true, wantWarning: true},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			var out, warn bytes.Buffer
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level, Port: 8080}, &out, &warn)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Same(t, l, slog.Default())

			l.Debug("debug message")
			l.Info("info message")

			assert.Equal(t, tc.wantDebug, strings.Contains(out.String(), "debug message"))
			assert.Equal(t, tc.wantInfo, strings.Contains(out.String(), "info message"))
			assert.Equal(t, tc.wantWarning, strings.Contains(warn.String(), "invalid log level"))
		})
	}
}

func TestSetupWritesJSON(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var out bytes.Buffer
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &out, &bytes.Buffer{})
	require.NoError(t, err)

	l.Info("deck created", slog.String("deck_id", "abc"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "deck created", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "abc", entry["deck_id"])
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	buf, l := logger.NewTestLogger(t)
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
	assert.NotNil(t, logger.FromContext(context.Background()))

	ctx := logger.WithLogger(context.Background(), l)
	assert.Same(t, l, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, l, logger.FromContext(ctx))

	assert.Equal(t, ctx, logger.WithLogger(ctx, nil), "nil logger leaves context unchanged")

	logger.FromContext(ctx).Warn("from context", slog.String("trace_id", "t-1"))
	logger.AssertLogContains(t, buf, "from context")
	logger.AssertLogField(t, buf, "trace_id", "t-1")
}
