package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/polysweep/pkg/errors"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestTestLogger(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", OperationKey, OperationSweep)
	testLogger.Warn("warning message")
	testLogger.Error("error message", fmt.Errorf("test error"), ErrorCodeKey, ErrorSingularMatrix)

	require.NotEmpty(t, buffer.String())
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		assert.True(t, testLogger.ContainsMessage(msg), msg)
	}
	assert.True(t, testLogger.ContainsField("key1", "value1"))
	assert.True(t, testLogger.ContainsField("number", 42.0))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "test error"))
	assert.True(t, testLogger.ContainsField(ErrorCodeKey, ErrorSingularMatrix))
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	child := testLogger.With(ModelNameKey, "LinearRegression", ComponentKey, "sweep")
	child.Info("degree evaluated", DegreeKey, 3, RMSEKey, 0.5)
	child.Debug("filtered out")

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "LinearRegression", entry[ModelNameKey])
	assert.Equal(t, "sweep", entry[ComponentKey])
	assert.Equal(t, 3.0, entry[DegreeKey])
	assert.Equal(t, 0.5, entry[RMSEKey])

	assert.False(t, testLogger.Enabled(context.Background(), LevelDebug))
	assert.True(t, testLogger.Enabled(context.Background(), LevelWarn))

	testLogger.Clear()
	entries, err = testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTestLoggerConcurrent(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	const goroutines, perGoroutine = 4, 5
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				testLogger.Info(fmt.Sprintf("goroutine %d message %d", id, j), "goroutine_id", id)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, goroutines*perGoroutine)
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)).
		With(ComponentKey, "sweep")

	logger.Debug("hidden")
	logger.Info("degree evaluated", DegreeKey, 2, RMSEKey, 1.25, "dangling")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "degree evaluated", entries[0]["message"])
	assert.Equal(t, "sweep", entries[0][ComponentKey])
	assert.Equal(t, 2.0, entries[0][DegreeKey])
	assert.Equal(t, 1.25, entries[0][RMSEKey])

	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelError))
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	err := errors.NewInsufficientSamplesError("sweep.Evaluate", 4, 5, 3)
	logger.Error("sweep failed", err, DegreeKey, 4)
	logger.Warn("structured", "detail", err)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "error", entries[0]["level"])
	assert.Contains(t, entries[0][ErrAttrKey], "insufficient samples")
	assert.Equal(t, 4.0, entries[0][DegreeKey])

	detail, ok := entries[1]["detail"].(map[string]interface{})
	require.True(t, ok, "structured errors are embedded as objects")
	assert.Equal(t, "InsufficientSamplesError", detail["type"])
	assert.Equal(t, 5.0, detail["required"])
	assert.Contains(t, detail["message"], "degree 4")
}

func TestSetupLoggerRoutesWarnings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupLoggerWithWriter(&buf, "info"))
	t.Cleanup(func() {
		errors.SetZerologWarnFunc(nil)
		_ = SetupLoggerWithWriter(&bytes.Buffer{}, "warn")
		errors.SetZerologWarnFunc(nil)
	})

	GetLoggerWithName("sweep").Info("started", SamplesKey, 40)
	errors.Warn(errors.NewIllConditionedWarning("LinearRegression.Fit", 3e17, 6))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "sweep", entries[0][ComponentKey])
	assert.Equal(t, 40.0, entries[0][SamplesKey])

	assert.Equal(t, "warn", entries[1]["level"])
	assert.Equal(t, "warnings", entries[1][ComponentKey])
	warning, ok := entries[1][WarningAttrKey].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "IllConditionedWarning", warning["type"])
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.ToUpper(tt.in), got.String())
		})
	}
}
