package iologger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ptnexus/apdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.input), v.input)
	}
}

func TestNewHandler(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		h := newHandler(&buf, config.LogConfig{Format: "json", Level: "info"})
		slog.New(h).Info("window committed", "offset", 1000)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "window committed", rec["msg"])
		assert.EqualValues(t, 1000, rec["offset"])
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		h := newHandler(&buf, config.LogConfig{Format: "text", Level: "warn"})
		slog.New(h).Info("hidden")
		assert.Empty(t, buf.String())
		slog.New(h).Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("tint", func(t *testing.T) {
		var buf bytes.Buffer
		h := newHandler(&buf, config.LogConfig{Format: "tint", Level: "debug"})
		slog.New(h).Debug("record failed", "acct", "1234567890123")
		assert.Contains(t, buf.String(), "record failed")
		assert.Contains(t, buf.String(), "1234567890123")
		// writers that are not terminals get no escape codes
		assert.NotContains(t, buf.String(), "\x1b[")
	})
}

func TestInit_File(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	err := Init(dir, config.LogConfig{
		Format: "json", Level: "info", Destination: "file",
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, LogFileName))
	assert.NoError(t, err)

	err = Init(filepath.Join(dir, "missing"), config.LogConfig{
		Format: "json", Level: "info", Destination: "file",
	})
	assert.Error(t, err)
}
