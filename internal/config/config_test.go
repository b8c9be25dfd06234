package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"TG_TOKEN", "TG_CHAT_ID", "PORT", "DB_PATH", "STORE_ENGINE", "TIMEZONE", "REMINDER_CRON", "MIZMAN_CONFIG"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/data/mizman.db", cfg.Database.Path)
	assert.Equal(t, "sqlite", cfg.Database.Engine)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.False(t, cfg.BotEnabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "mizman.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram:
  token: file-token
  chat_id: 42
database:
  path: /tmp/file.db
  engine: json
timezone: Asia/Karachi
`), 0o644))
	t.Setenv("MIZMAN_CONFIG", path)
	t.Setenv("DB_PATH", "/tmp/env.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.Database.Engine)
	assert.Equal(t, "Asia/Karachi", cfg.Timezone)
	assert.True(t, cfg.BotEnabled())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that exists, even an empty one
	require.NoError(t, os.Unsetenv("PORT"))
	require.NoError(t, os.WriteFile(".env", []byte("PORT=9090\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadRejectsTokenWithoutChat(t *testing.T) {
	clearEnv(t)
	t.Setenv("TG_TOKEN", "token")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadChatID(t *testing.T) {
	clearEnv(t)
	t.Setenv("TG_CHAT_ID", "abc")

	_, err := Load()
	assert.Error(t, err)
}
