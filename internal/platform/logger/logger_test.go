// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/phrazzld/question-api/internal/config"
	"github.com/phrazzld/question-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault puts back the process-wide default logger after a test.
func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupWithWriter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		expectDebug bool
		expectInfo  bool
	}{
		{name: "debug level", level: "debug", expectDebug: true, expectInfo: true},
		{name: "info level", level: "info", expectDebug: false, expectInfo: true},
		{name: "upper case", level: "INFO", expectDebug: false, expectInfo: true},
		{name: "error level", level: "error", expectDebug: false, expectInfo: false},
		{name: "invalid falls back to info", level: "verbose", expectDebug: false, expectInfo: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer

			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, &buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")

			out := buf.String()
			assert.Equal(t, tc.expectDebug, bytes.Contains([]byte(out), []byte("debug message")))
			assert.Equal(t, tc.expectInfo, bytes.Contains([]byte(out), []byte("info message")))
		})
	}
}

func TestSetupInstallsDefaultJSONLogger(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)
	require.NoError(t, err)

	slog.Info("via default", "component", "test")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "via default", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestParseLevel(t *testing.T) {
	level, ok := logger.ParseLevel(" warn ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = logger.ParseLevel("fatal")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	scoped := slog.New(slog.NewJSONHandler(&buf, nil)).With("trace_id", "abc")
	fallback := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	ctx := logger.WithLogger(context.Background(), scoped)

	assert.Same(t, scoped, logger.FromContext(ctx))
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
}
