package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestInit(t *testing.T) {
	t.Run("text_output", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelInfo, Output: &buf})

		Info("alarm saved", KeyAlarmID, 7)
		assert.Contains(t, buf.String(), "alarm saved")
		assert.Contains(t, buf.String(), "alarm_id=7")
		assert.False(t, Debug)
	})

	t.Run("json_output", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})
		assert.True(t, Debug)

		DebugLog("query", KeyCount, 3)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "query", entry["msg"])
		assert.Equal(t, float64(3), entry["count"])
	})

	t.Run("level_filters", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelWarn, Output: &buf})

		Info("hidden")
		Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		Init(Config{Level: slog.LevelInfo})
		assert.NotNil(t, Logger())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "alarmbook.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}

func TestOperationContext(t *testing.T) {
	t.Run("generated_id", func(t *testing.T) {
		ctx := NewOperationContext(context.Background())
		id := OperationIDFromContext(ctx)
		assert.Len(t, id, 36)
	})

	t.Run("distinct_ids", func(t *testing.T) {
		a := OperationIDFromContext(NewOperationContext(context.Background()))
		b := OperationIDFromContext(NewOperationContext(context.Background()))
		assert.NotEqual(t, a, b)
	})

	t.Run("missing_id", func(t *testing.T) {
		assert.Empty(t, OperationIDFromContext(context.Background()))
		assert.Empty(t, OperationIDFromContext(nil))
	})

	t.Run("logger_carries_id", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelInfo, Output: &buf})

		ctx := WithOperationID(context.Background(), "op-123")
		LoggerFromContext(ctx).Info("delete")
		assert.Contains(t, buf.String(), "op_id=op-123")
	})
}
