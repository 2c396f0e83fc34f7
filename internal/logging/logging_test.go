package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aishowcase/internal/config"
)

func TestNew_NoFileIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.log")
	logger, err := New(config.LogConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("carousel index changed", zap.String("widget", "hero"), zap.Int("index", 2))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"carousel index changed"`)
	assert.Contains(t, string(data), `"widget":"hero"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.log")
	logger, err := New(config.LogConfig{File: path, Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LogConfig{File: filepath.Join(t.TempDir(), "x.log"), Level: "loud"})
	assert.Error(t, err)
}
