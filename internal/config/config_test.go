package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/chordsheet/internal/config"
	"github.com/sukalov/chordsheet/internal/utils"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN", "REDIS_URL",
		"REDIS_PASSWORD", "BOT_TOKEN", "LOG_CHANNEL_ID",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chordsheet.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, `
[database]
url = "libsql://songs.turso.io"

[redis]
url = "cache:6379"
ttl = "90m"

[bot]
log_channel_id = -100123
admins = ["sukalov"]

[render]
escape = true
chord_color = "on"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "libsql://songs.turso.io", cfg.Database.URL)
	assert.Equal(t, "cache:6379", cfg.Redis.URL)
	assert.Equal(t, 90*time.Minute, cfg.Redis.TTL.Duration)
	assert.Equal(t, int64(-100123), cfg.Bot.LogChannelID)
	assert.Equal(t, []string{"sukalov"}, cfg.Bot.Admins)
	assert.True(t, cfg.Render.Escape)
	assert.Equal(t, "on", cfg.Render.ChordColor)
	require.NoError(t, cfg.RequireDatabase())
	require.ErrorIs(t, cfg.RequireBot(), utils.ErrMissingEnv)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TURSO_DATABASE_URL", "libsql://env.turso.io")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("LOG_CHANNEL_ID", "77")

	path := writeFile(t, "[database]\nurl = \"libsql://file.turso.io\"\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "libsql://env.turso.io", cfg.Database.URL)
	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, int64(77), cfg.Bot.LogChannelID)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL.Duration)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = config.Load(writeFile(t, "[redis]\nttl = \"soon\"\n"))
	require.Error(t, err)

	t.Setenv("LOG_CHANNEL_ID", "not-a-number")
	_, err = config.Load(writeFile(t, ""))
	require.Error(t, err)
}

func TestLoadDefaultPathOptional(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
