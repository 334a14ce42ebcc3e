package logger

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestInitializeWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWriter(&buf, "WARN")
	defer InitializeWriter(&bytes.Buffer{}, "INFO")

	Info("hidden")
	Warningf("carver %s", "stalled")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "carver stalled")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestInitialize_FileEnabledRequiresPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileEnabled = true
	cfg.FilePath = ""
	assert.Error(t, Initialize(cfg))
}

func TestInitialize_WritesToFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConsoleEnabled = false
	cfg.FileEnabled = true
	cfg.FilePath = filepath.Join(t.TempDir(), "maze.log")
	require.NoError(t, Initialize(cfg))
	defer Close()

	Info("generation started", "topology", "square")
	require.NotNil(t, logFile)
	assert.FileExists(t, cfg.FilePath)
}

func TestMultiHandler(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := newMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errorBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	l := slog.New(h.WithAttrs([]slog.Attr{slog.String("maze", "hex")}))

	l.Debug("step")
	l.Error("bad wiring")

	assert.Contains(t, debugBuf.String(), "step")
	assert.Contains(t, debugBuf.String(), "bad wiring")
	assert.NotContains(t, errorBuf.String(), "step")
	assert.Contains(t, errorBuf.String(), "maze=hex")
}
