package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.warn)
	assert.NotNil(t, logger.error)
}

func TestLogger_DoesNotPanic(t *testing.T) {
	logger := New()

	logger.Info("listing %s published", "ad-1")
	logger.Warn("moderation degraded: %v", "timeout")
	logger.Error("payment gateway error: %v", "503")

	logger.Info("plain message")
	logger.Warn("plain message")
	logger.Error("plain message")
}
