package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("should build a development logger", func(t *testing.T) {
		log, err := New("debug", true)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("should honour the level in production", func(t *testing.T) {
		log, err := New("warn", false)
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("should reject unknown levels", func(t *testing.T) {
		_, err := New("loud", false)
		assert.Error(t, err)
	})
}
