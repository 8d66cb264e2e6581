package log_test

import (
	"testing"

	"github.com/on-the-ground/grimoire/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEmit_RoutesLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	log.Emit(logger, log.LogDebug, "d")
	log.Emit(logger, log.LogInfo, "i")
	log.Emit(logger, log.LogWarn, "w")
	log.Emit(logger, log.LogError, "e")
	log.Emit(logger, log.LogLevel("verbose"), "fallback", zap.Int("n", 1))

	entries := logs.AllUntimed()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[4].Level)
	assert.Equal(t, int64(1), entries[4].ContextMap()["n"])
}

func TestEmit_NilLoggerIsSilent(t *testing.T) {
	assert.NotPanics(t, func() {
		log.Emit(nil, log.LogInfo, "nobody listens")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LogDebug, log.ParseLevel("debug"))
	assert.Equal(t, log.LogError, log.ParseLevel("error"))
	assert.Equal(t, log.LogInfo, log.ParseLevel("loud"))
}

func TestNew(t *testing.T) {
	logger, err := log.New(log.LogWarn, "console")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = log.New(log.LogInfo, "xml")
	assert.Error(t, err)
}
