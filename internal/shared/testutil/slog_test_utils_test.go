package testutil

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler_CapturesRecords(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Info("row repaired", slog.String("column", "item"))
	logger.Error("export failed", slog.Int("rows", 12))

	records := handler.GetRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "row repaired", records[0].Message)
	assert.Equal(t, slog.LevelError, records[1].Level)

	assert.True(t, handler.ContainsMessage("row repaired"))
	assert.True(t, handler.ContainsAttr("column", "item"))
	assert.False(t, handler.ContainsAttr("column", "quantity"))
}

func TestBufferedSlogHandler_FiltersByLevel(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Debug("median computed")
	logger.Info("stage started")
	logger.Warn("rejections disabled")
	logger.Error("stage failed")

	assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
	assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)

	// Debug records are captured too; the buffered handler never filters.
	assert.Len(t, handler.GetRecordsByLevel(slog.LevelDebug), 1)
}

func TestBufferedSlogHandler_Clear(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Info("first")
	logger.Info("second")
	require.Equal(t, 2, handler.Count())

	handler.Clear()
	assert.Equal(t, 0, handler.Count())
	assert.Empty(t, handler.GetRecords())
}

func TestBufferedSlogHandler_RecordsSurviveWith(t *testing.T) {
	logger, handler := NewTestLogger(t)

	// WithAttrs returns the same handler, so derived loggers still feed
	// the one buffer (their attrs are not merged into the record).
	logger.With("stage", "clean").Info("stage completed")

	assert.True(t, handler.ContainsMessage("stage completed"))
}

func TestBufferedSlogHandler_ConcurrentUse(t *testing.T) {
	logger, handler := NewTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("worker done", slog.Int("worker", n))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, handler.Count())
}

func TestAssertionHelpers(t *testing.T) {
	logger, handler := NewTestLogger(t)

	logger.Info("run completed", slog.String("run_id", "run-9"))

	AssertLogContains(t, handler, slog.LevelInfo, "run completed")
	AssertLogAttr(t, handler, "run_id", "run-9")
	AssertNoErrors(t, handler)
}
