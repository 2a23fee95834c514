package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		dev, verbose bool
		debug        bool
	}{
		{false, false, false},
		{false, true, true},
		{true, false, true},
		{true, true, true},
	}
	for _, tt := range tests {
		logger, err := New(tt.dev, tt.verbose)
		require.NoError(t, err)
		assert.Equal(t, tt.debug, logger.Core().Enabled(zapcore.DebugLevel), "dev=%v verbose=%v", tt.dev, tt.verbose)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	}
}
