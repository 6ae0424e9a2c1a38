package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationConfig(t *testing.T) {
	cfg := NotificationConfig(NotifyProjectCreated)
	assert.Equal(t, "Project Created", cfg.Title)
	assert.Equal(t, "high", cfg.Priority)

	cfg = NotificationConfig(NotifyProgressUpdated)
	assert.Equal(t, "low", cfg.Priority)
}

func TestNotificationConfig_UnknownType(t *testing.T) {
	cfg := NotificationConfig("nonsense")
	assert.Equal(t, "System Notification", cfg.Title)
	assert.Equal(t, "info-circle", cfg.Icon)
}
