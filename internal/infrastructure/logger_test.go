package infrastructure

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafecli/internal/config"
)

// readLogEntries decodes every JSON line the logger wrote to path.
func readLogEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "log line is not JSON: %s", scanner.Text())
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func fileLoggingConfig(t *testing.T, level string) config.LoggingConfig {
	t.Helper()
	return config.LoggingConfig{
		Level:    level,
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "cleaner.log"),
	}
}

func TestInitializeLogger_WritesJSONToFile(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	cfg := fileLoggingConfig(t, "info")
	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("run started", "input_rows", 5)
	require.NoError(t, CloseLogFile())

	entries := readLogEntries(t, cfg.FilePath)
	require.Len(t, entries, 1)
	assert.Equal(t, "run started", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, float64(5), entries[0]["input_rows"])
}

func TestInitializeLogger_CreatesLogDirectory(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "logs", "nested", "cleaner.log"),
	}

	_, err := InitializeLogger(cfg)
	require.NoError(t, err)
	defer CloseLogFile()

	assert.FileExists(t, cfg.FilePath)
}

func TestInitializeLogger_LevelFiltering(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	cfg := fileLoggingConfig(t, "warn")
	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)

	logger.Debug("quantity median computed")
	logger.Info("row repaired")
	logger.Warn("rejection log disabled")
	logger.Error("export failed")
	require.NoError(t, CloseLogFile())

	entries := readLogEntries(t, cfg.FilePath)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "ERROR", entries[1]["level"])
}

func TestInitializeLogger_Idempotent(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	cfg := fileLoggingConfig(t, "info")
	first, err := InitializeLogger(cfg)
	require.NoError(t, err)

	// A second call must not reopen files or replace the instance.
	second, err := InitializeLogger(fileLoggingConfig(t, "debug"))
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestTraceIDInjection(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	cfg := fileLoggingConfig(t, "info")
	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "run-1234")
	logger.InfoContext(ctx, "stage completed", "stage", "clean")
	logger.Info("no context message")
	require.NoError(t, CloseLogFile())

	entries := readLogEntries(t, cfg.FilePath)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1234", entries[0]["trace_id"])
	assert.Equal(t, "clean", entries[0]["stage"])
	_, present := entries[1]["trace_id"]
	assert.False(t, present, "trace_id must not appear without a context value")
}

func TestTraceIDContextRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "run-abc")
	assert.Equal(t, "run-abc", GetTraceID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))
}

func TestContextWithTraceID(t *testing.T) {
	ctx := ContextWithTraceID(context.Background())
	assert.NotEmpty(t, GetTraceID(ctx))

	// Each context gets its own ID.
	other := ContextWithTraceID(context.Background())
	assert.NotEqual(t, GetTraceID(ctx), GetTraceID(other))
}

func TestGenerateTraceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTraceID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"ERROR", "ERROR"},
		{"verbose", "INFO"}, // unknown levels fall back to info
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input).String())
		})
	}
}

func TestCloseLogFile_NoFile(t *testing.T) {
	ResetLoggerForTesting()
	assert.NoError(t, CloseLogFile())
}
