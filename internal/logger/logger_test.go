package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"DEBUG", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"Warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewJSONFiltersLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := NewTo(Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("import finished", zap.Int("imported", 3))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "import finished", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(3), entry["imported"])
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := NewTo(DefaultConfig(), &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hello", zap.String("owner", "vicky"))
	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "vicky")
	assert.NotContains(t, out, "hidden")
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := NewTo(Config{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewTo(Config{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "")

	cfg := LoadConfigFromEnv(DefaultConfig())
	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
}
