package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelWarn)

	logger.Debug("chunk sizes: %v", []int{10, 20})
	logger.Info("indexed %d chunks", 3)
	logger.Warn("embedding degraded for chunk %d", 1)
	logger.Error("store unavailable")

	out := buf.String()
	assert.NotContains(t, out, "[DEBUG]")
	assert.NotContains(t, out, "[INFO]")
	assert.Contains(t, out, "[WARN] embedding degraded for chunk 1")
	assert.Contains(t, out, "[ERROR] store unavailable")
	assert.Contains(t, out, "[ragpipe]")
}

func TestDefaultLogger_NoneSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelNone)

	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")

	assert.Empty(t, buf.String())
}

func TestNoOpLogger(t *testing.T) {
	var logger Logger = &NoOpLogger{}
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
}

func TestPackageLevelLogger(t *testing.T) {
	original := GetDefaultLogger()
	defer SetDefaultLogger(original)

	var buf bytes.Buffer
	SetDefaultLogger(NewCustomLogger(&buf, LogLevelInfo))

	GetDefaultLogger().Info("pipeline started")
	require.True(t, strings.Contains(buf.String(), "pipeline started"))

	SetLogLevel(LogLevelError)
	custom, ok := GetDefaultLogger().(*DefaultLogger)
	require.True(t, ok)
	assert.Equal(t, LogLevelError, custom.level)
}
