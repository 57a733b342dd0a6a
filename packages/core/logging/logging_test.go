package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		verbose bool
		level   zapcore.Level
	}{
		{true, zapcore.DebugLevel},
		{false, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		logger, err := New(tt.verbose)
		require.NoError(t, err)

		assert.Equal(t, tt.level, Level(tt.verbose))
		assert.True(t, logger.Core().Enabled(tt.level))
		assert.False(t, logger.Core().Enabled(tt.level-1))
	}
}
