package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/snooker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("loud"))
}

func TestInitLogger(t *testing.T) {
	v := config.NewEmptyViper()
	v.Set("logging.level", "warn")
	v.Set("logging.format", "console")

	logger, err := InitLogger(config.NewFromViper(v))
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestInitConsoleLogger(t *testing.T) {
	logger, err := InitConsoleLogger(true, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitLoggerWritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "snooker.log")
	v := config.NewEmptyViper()
	v.Set("logging.format", "console")
	v.Set("logging.file", path)

	logger, err := InitLogger(config.NewFromViper(v))
	require.NoError(t, err)
	logger.Info("Comment scored", zap.Int("score", -10))
	logger.Debug("Not written at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Comment scored"`)
	assert.Contains(t, string(data), `"score":-10`)
	assert.NotContains(t, string(data), "Not written")
}
