package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	d := DefaultAppConfig()
	assert.Equal(t, d.Notifications, cfg.Notifications)
	assert.Equal(t, 25, cfg.Timer.TargetMinutes)
	assert.Equal(t, 2000, cfg.DeepLink.FallbackTimeoutMS)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultAppConfig()
	cfg.User.Name = "Sam"
	cfg.Notifications.Enabled = true
	cfg.Notifications.TriggerChance = 0.5
	cfg.Wallet.RPCURL = "http://127.0.0.1:8545"
	cfg.Timer.TargetMinutes = 50
	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.User.Name)
	assert.True(t, got.Notifications.Enabled)
	assert.Equal(t, 0.5, got.Notifications.TriggerChance)
	assert.Equal(t, "http://127.0.0.1:8545", got.Wallet.RPCURL)
	assert.Equal(t, 50, got.Timer.TargetMinutes)
}

func TestLoadConfigNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
notifications:
  interval_minutes: 0
  trigger_chance: 7
timer:
  target_minutes: -5
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Notifications.IntervalMinutes)
	assert.Equal(t, 0.3, cfg.Notifications.TriggerChance)
	assert.Equal(t, DefaultTargetMinutes, cfg.Timer.TargetMinutes)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PRODOWL_WALLET_RPC_URL", "http://bridge.local")
	t.Setenv("PRODOWL_USER_NAME", "Env Owl")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://bridge.local", cfg.Wallet.RPCURL)
	assert.Equal(t, "Env Owl", cfg.User.Name)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timer: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "reading config")
}
