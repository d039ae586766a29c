package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// StorageConfig locates the snapshot database.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// UserConfig holds user preferences.
type UserConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// NotificationConfig controls how often and how loudly the mascot nags.
type NotificationConfig struct {
	// Enabled grants desktop alert permission up front.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// IntervalMinutes is how often the contextual notification check runs.
	IntervalMinutes int `mapstructure:"interval_minutes" yaml:"interval_minutes"`

	// TriggerChance is the probability that a selected notification is surfaced.
	TriggerChance float64 `mapstructure:"trigger_chance" yaml:"trigger_chance"`

	// DismissSeconds is how long a desktop alert stays visible.
	DismissSeconds int `mapstructure:"dismiss_seconds" yaml:"dismiss_seconds"`
}

// MascotConfig controls the mood check cadence.
type MascotConfig struct {
	CheckIntervalMinutes int `mapstructure:"check_interval_minutes" yaml:"check_interval_minutes"`
}

// DeepLinkConfig holds deep link settings.
type DeepLinkConfig struct {
	WebBaseURL        string `mapstructure:"web_base_url" yaml:"web_base_url"`
	FallbackTimeoutMS int    `mapstructure:"fallback_timeout_ms" yaml:"fallback_timeout_ms"`
}

// WalletConfig points at the wallet bridge.
type WalletConfig struct {
	// RPCURL is the JSON-RPC endpoint of the wallet bridge. Empty means no wallet.
	RPCURL string `mapstructure:"rpc_url" yaml:"rpc_url"`
}

// TimerConfig holds focus timer defaults.
type TimerConfig struct {
	TargetMinutes int `mapstructure:"target_minutes" yaml:"target_minutes"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	File    string `mapstructure:"file" yaml:"file"`
	Console bool   `mapstructure:"console" yaml:"console"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage       StorageConfig      `mapstructure:"storage" yaml:"storage"`
	User          UserConfig         `mapstructure:"user" yaml:"user"`
	Notifications NotificationConfig `mapstructure:"notifications" yaml:"notifications"`
	Mascot        MascotConfig       `mapstructure:"mascot" yaml:"mascot"`
	DeepLink      DeepLinkConfig     `mapstructure:"deeplink" yaml:"deeplink"`
	Wallet        WalletConfig       `mapstructure:"wallet" yaml:"wallet"`
	Timer         TimerConfig        `mapstructure:"timer" yaml:"timer"`
	Log           LogConfig          `mapstructure:"log" yaml:"log"`
	Display       DisplayConfig      `mapstructure:"display" yaml:"display"`
}

// ConfigDir returns ~/.config/prodowl, or the working directory when the
// home directory cannot be resolved.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "prodowl")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/prodowl/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Storage: StorageConfig{Path: filepath.Join(dir, "prodowl.db")},
		Notifications: NotificationConfig{
			Enabled:         false,
			IntervalMinutes: 5,
			TriggerChance:   0.3,
			DismissSeconds:  10,
		},
		Mascot:   MascotConfig{CheckIntervalMinutes: 5},
		DeepLink: DeepLinkConfig{WebBaseURL: "http://localhost:5173", FallbackTimeoutMS: 2000},
		Timer:    TimerConfig{TargetMinutes: DefaultTargetMinutes},
		Log:      LogConfig{Level: "info", File: filepath.Join(dir, "prodowl.log")},
		Display:  DisplayConfig{Theme: "default"},
	}
}

// setDefaults mirrors DefaultAppConfig into v so missing keys resolve.
func setDefaults(v *viper.Viper, d *AppConfig) {
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("user.name", d.User.Name)
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("notifications.interval_minutes", d.Notifications.IntervalMinutes)
	v.SetDefault("notifications.trigger_chance", d.Notifications.TriggerChance)
	v.SetDefault("notifications.dismiss_seconds", d.Notifications.DismissSeconds)
	v.SetDefault("mascot.check_interval_minutes", d.Mascot.CheckIntervalMinutes)
	v.SetDefault("deeplink.web_base_url", d.DeepLink.WebBaseURL)
	v.SetDefault("deeplink.fallback_timeout_ms", d.DeepLink.FallbackTimeoutMS)
	v.SetDefault("wallet.rpc_url", d.Wallet.RPCURL)
	v.SetDefault("timer.target_minutes", d.Timer.TargetMinutes)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.console", d.Log.Console)
	v.SetDefault("display.theme", d.Display.Theme)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with PRODOWL_ override file values
// (PRODOWL_WALLET_RPC_URL overrides wallet.rpc_url).
// If the file does not exist, defaults plus environment are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("prodowl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultAppConfig())

	if err := v.ReadInConfig(); err != nil {
		_, isPathErr := err.(*os.PathError)
		_, isNotFound := err.(viper.ConfigFileNotFoundError)
		if !isPathErr && !isNotFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize clamps values that would break the scheduler or timer.
func (c *AppConfig) normalize() {
	d := DefaultAppConfig()
	if c.Notifications.IntervalMinutes <= 0 {
		c.Notifications.IntervalMinutes = d.Notifications.IntervalMinutes
	}
	if c.Notifications.TriggerChance < 0 || c.Notifications.TriggerChance > 1 {
		c.Notifications.TriggerChance = d.Notifications.TriggerChance
	}
	if c.Notifications.DismissSeconds <= 0 {
		c.Notifications.DismissSeconds = d.Notifications.DismissSeconds
	}
	if c.Mascot.CheckIntervalMinutes <= 0 {
		c.Mascot.CheckIntervalMinutes = d.Mascot.CheckIntervalMinutes
	}
	if c.DeepLink.FallbackTimeoutMS <= 0 {
		c.DeepLink.FallbackTimeoutMS = d.DeepLink.FallbackTimeoutMS
	}
	if c.Timer.TargetMinutes <= 0 {
		c.Timer.TargetMinutes = d.Timer.TargetMinutes
	}
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("user", cfg.User)
	v.Set("notifications", cfg.Notifications)
	v.Set("mascot", cfg.Mascot)
	v.Set("deeplink", cfg.DeepLink)
	v.Set("wallet", cfg.Wallet)
	v.Set("timer", cfg.Timer)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
