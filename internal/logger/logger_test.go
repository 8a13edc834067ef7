package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(level string, buf *bytes.Buffer) *Logger {
	return New(&Config{
		Level:  level,
		Format: "json",
		Output: buf,
	})
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{name: "json config", config: &Config{Level: "debug", Format: "json", Output: io.Discard}},
		{name: "console config", config: &Config{Level: "info", Format: "console", Output: io.Discard}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	jsonLogger("info", buf).Info("profile resolved")

	entry := decode(t, buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "profile resolved", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	child := jsonLogger("info", buf).With().
		Str("task", "test").
		Int("fork", 4).
		Bool("tls", false).
		Logger()

	child.Info("task profile built")

	entry := decode(t, buf)
	assert.Equal(t, "test", entry["task"])
	assert.Equal(t, float64(4), entry["fork"])
	assert.Equal(t, false, entry["tls"])
}

func TestLogger_ErrorWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	jsonLogger("error", buf).ErrorWith("resolve failed", errors.New("unsupported database selector"), map[string]any{
		"db": "sqlite",
	})

	entry := decode(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "unsupported database selector", entry["error"])
	assert.Equal(t, "sqlite", entry["db"])
}

func TestLogger_WithErr(t *testing.T) {
	buf := &bytes.Buffer{}
	jsonLogger("warn", buf).With().Err(errors.New("bad port")).Logger().Warn("request rejected")

	entry := decode(t, buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "bad port", entry["error"])
}

func TestLogger_Formatted(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(*Logger)
		level   string
	}{
		{"debugf", func(l *Logger) { l.Debugf("datasource %s", "mysql") }, "debug"},
		{"infof", func(l *Logger) { l.Infof("listening on %s", ":8080") }, "info"},
		{"warnf", func(l *Logger) { l.Warnf("using the %s default", "postgres") }, "warn"},
		{"errorf", func(l *Logger) { l.Errorf("script %s failed", "drop") }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.logFunc(jsonLogger("debug", buf))

			entry := decode(t, buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.NotContains(t, entry["message"], "%")
		})
	}
}

func TestFromContext_Empty(t *testing.T) {
	prev := zerolog.TimeFieldFormat
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	t.Cleanup(func() { zerolog.TimeFieldFormat = prev })

	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, zerolog.TimeFormatUnixMs, zerolog.TimeFieldFormat)
}

func TestLogger_Context(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := jsonLogger("info", buf).WithContext(context.Background())

	FromContext(ctx).Info("from context")

	assert.Equal(t, "from context", decode(t, buf)["message"])
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFunc  func(*Logger)
		expected bool
	}{
		{"debug level logs debug", "debug", func(l *Logger) { l.Debug("d") }, true},
		{"info level skips debug", "info", func(l *Logger) { l.Debug("d") }, false},
		{"error level logs error", "error", func(l *Logger) { l.Error("e") }, true},
		{"error level skips info", "error", func(l *Logger) { l.Info("i") }, false},
		{"unknown level falls back to info", "verbose", func(l *Logger) { l.Info("i") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.logFunc(jsonLogger(tt.level, buf))

			if tt.expected {
				assert.NotEmpty(t, buf.String(), "expected log output")
			} else {
				assert.Empty(t, buf.String(), "expected no log output")
			}
		})
	}
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bootprofile.log")
	l := New(&Config{Level: "info", Format: "json", File: path, MaxSizeMB: 1})

	l.Info("written to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("warn"))
	assert.False(t, ValidLevel("trace"))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Info("ignored") })
}

func BenchmarkLogger_WithFields(b *testing.B) {
	l := New(&Config{Level: "info", Format: "json", Output: io.Discard})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.With().
			Str("task", "run").
			Int("fork", i).
			Logger().
			Info("benchmark message")
	}
}
