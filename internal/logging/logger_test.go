package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/openrelayxyz/partmanager/internal/config"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{"info", false, zapcore.InfoLevel},
		{"warn", false, zapcore.WarnLevel},
		{"error", false, zapcore.ErrorLevel},
		{"debug", false, zapcore.DebugLevel},
		{"error", true, zapcore.DebugLevel},
	}
	for _, tc := range cases {
		logger, err := New(config.LoggingConfig{Level: tc.level, Format: "console"}, tc.verbose)
		require.NoError(t, err, tc.level)
		assert.True(t, logger.Core().Enabled(tc.want), "level %s verbose=%v", tc.level, tc.verbose)
		if tc.want > zapcore.DebugLevel {
			assert.False(t, logger.Core().Enabled(tc.want-1), "level %s should filter below", tc.level)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json"}, false)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud", Format: "console"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Level: "info", Format: "xml"}, false)
	assert.Error(t, err)
}
