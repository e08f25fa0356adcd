package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BOT_TOKEN", "ROOT_ID", "NOTES_DIR", "TEMPLATE_SUBDIR", "OLLAMA_URL", "OLLAMA_MODEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	vault := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"token: abc123\nroot_id: 42\nnotes_dir: "+vault+"\nsync_interval: 1m\n"), 0o644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.Token)
	assert.Equal(t, int64(42), cfg.RootID)
	assert.Equal(t, time.Minute, cfg.SyncInterval)
	assert.Equal(t, DefaultDayStartHour, cfg.DayStartHour)
	assert.Equal(t, filepath.Join(vault, ".dailybot.db"), cfg.IndexPath)
	assert.DirExists(t, cfg.DailyDir())
	assert.False(t, cfg.AIEnabled())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	vault := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"token: from-file\nroot_id: 1\nnotes_dir: "+vault+"\n"), 0o644))

	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("ROOT_ID", "99")
	t.Setenv("OLLAMA_URL", "http://localhost:11434")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Token)
	assert.Equal(t, int64(99), cfg.RootID)
	assert.True(t, cfg.AIEnabled())
}

func TestLoadEnvOnly(t *testing.T) {
	clearEnv(t)
	vault := t.TempDir()
	t.Setenv("BOT_TOKEN", "tok")
	t.Setenv("ROOT_ID", "7")
	t.Setenv("NOTES_DIR", vault)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, vault, cfg.NotesDir)
	assert.Equal(t, filepath.Join(vault, "Templates", "Daily.md"), cfg.TemplatePath())
}

func TestValidation(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.ErrorContains(t, err, "notes_dir")

	t.Setenv("NOTES_DIR", filepath.Join(t.TempDir(), "missing"))
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv("NOTES_DIR", t.TempDir())
	_, err = Load("")
	assert.ErrorContains(t, err, "root_id")
}
