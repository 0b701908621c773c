package logger

import (
	"path/filepath"
	"testing"

	"shorturl-analytics/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	cfg := config.Default().Log
	cfg.File = filepath.Join(t.TempDir(), "app.log")
	cfg.Level = "warn"

	InitLogger(cfg)
	require.NotNil(t, Logger)
	require.NotNil(t, Sugar)

	assert.Same(t, Logger, zap.L())
	assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
}

func TestInitLogger_BadLevelFallsBackToInfo(t *testing.T) {
	cfg := config.Default().Log
	cfg.File = filepath.Join(t.TempDir(), "app.log")
	cfg.Level = "loud"

	InitLogger(cfg)
	assert.True(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
}
