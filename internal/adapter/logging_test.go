package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestSetupLogger_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "loofah.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("sync poll failed", "job", "j1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"msg":"sync poll failed"`)
	assert.Contains(t, string(data), `"job":"j1"`)
}

func TestTeeLogger(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	debug := slog.New(slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	warn := slog.New(slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger := TeeLogger(debug, warn).With("job", "j1")
	logger.Debug("tick")
	logger.Warn("timed out")

	assert.Contains(t, debugBuf.String(), "tick")
	assert.Contains(t, debugBuf.String(), "timed out")
	assert.NotContains(t, warnBuf.String(), "tick")
	assert.Contains(t, warnBuf.String(), "job=j1")
}
