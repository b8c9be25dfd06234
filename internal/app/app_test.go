package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mizman/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Database.Engine = "memory"
	cfg.Timezone = "Asia/Karachi"
	cfg.ReminderCron = "0 18 * * *"
	return cfg
}

func TestNewWithoutBot(t *testing.T) {
	application, err := New(testConfig())
	require.NoError(t, err)
	assert.Nil(t, application.bot)
	assert.NotNil(t, application.services.Notification, "reminders fall back to the log")
	assert.Len(t, application.cron.Entries(), 2)

	require.NoError(t, application.Start())
	require.NoError(t, application.Stop())
}

func TestNewRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.ReminderCron = "every evening"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewRejectsUnknownEngine(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Engine = "postgres"

	_, err := New(cfg)
	assert.Error(t, err)
}
