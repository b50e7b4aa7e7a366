package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
	}
	for _, tc := range tests {
		logger := NewLogger(tc.level)
		assert.Equal(t, tc.expected, logger.GetLevel(), "level %q", tc.level)
	}
}

func TestNewRunLogger(t *testing.T) {
	base := NewLogger("info")
	entry := NewRunLogger(base, "run-123")
	assert.Equal(t, "run-123", entry.Data["run_id"])
}
