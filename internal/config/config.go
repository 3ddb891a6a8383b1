// Package config owns configuration resolution and the files Quarters keeps
// on disk: the cached auth session and local settings. Both are plain JSON
// written with owner-only permissions under the resolved config directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Env var keys, without the QUARTERS_ prefix.
const (
	keyAuthURL        = "auth_url"
	keyAuthAnonKey    = "auth_anon_key"
	keyAPIURL         = "api_url"
	keyNoSessionCache = "no_session_cache"
	keyDebug          = "debug"
	keyConfigDir      = "config_dir"
)

// Config holds the resolved runtime configuration. Values come from the
// environment; missing required values produce startup warnings but never
// block launch, failures surface on the first auth or API call instead.
type Config struct {
	AuthURL        string // identity provider base URL
	AuthAnonKey    string // identity provider anonymous key
	APIURL         string // workspace API base URL
	NoSessionCache bool   // disable session persistence
	Debug          bool   // enable debug logging

	Dir      string   // resolved config directory
	Warnings []string // missing-value warnings gathered during resolution

	Settings *Settings

	mu sync.RWMutex
}

// Load resolves configuration from the environment and loads local settings.
// The config directory is created if it does not exist; failure to create it
// is the one genuinely unrecoverable startup error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUARTERS")
	v.AutomaticEnv()
	v.SetDefault(keyNoSessionCache, false)
	v.SetDefault(keyDebug, false)

	dir, err := resolveDir(v.GetString(keyConfigDir))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	cfg := &Config{
		AuthURL:        v.GetString(keyAuthURL),
		AuthAnonKey:    v.GetString(keyAuthAnonKey),
		APIURL:         v.GetString(keyAPIURL),
		NoSessionCache: v.GetBool(keyNoSessionCache),
		Debug:          v.GetBool(keyDebug),
		Dir:            dir,
	}

	if cfg.AuthURL == "" {
		cfg.Warnings = append(cfg.Warnings, "QUARTERS_AUTH_URL is not set; sign-in will fail")
	}
	if cfg.AuthAnonKey == "" {
		cfg.Warnings = append(cfg.Warnings, "QUARTERS_AUTH_ANON_KEY is not set; sign-in will fail")
	}
	if cfg.APIURL == "" {
		cfg.Warnings = append(cfg.Warnings, "QUARTERS_API_URL is not set; workspace requests will fail")
	}

	settings, err := LoadSettings(dir)
	if err != nil {
		// A corrupt settings file should not block launch
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("settings file unreadable, using defaults: %v", err))
		settings = DefaultSettings()
	}
	cfg.Settings = settings

	return cfg, nil
}

// resolveDir picks the config directory: explicit override, then XDG config
// home, then a dotdir under the home directory.
func resolveDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quarters"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".quarters"), nil
}

// SessionPath returns the path of the cached session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, "session.json")
}

// SettingsPath returns the path of the settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, "settings.json")
}

// Settings are the locally persisted preferences.
type Settings struct {
	NotificationsEnabled bool `json:"notifications_enabled"`
	PageLimit            int  `json:"page_limit"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		NotificationsEnabled: true,
		PageLimit:            20,
	}
}

// LoadSettings reads the settings file under dir, returning defaults when the
// file does not exist.
func LoadSettings(dir string) (*Settings, error) {
	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if s.PageLimit <= 0 {
		s.PageLimit = DefaultSettings().PageLimit
	}
	return s, nil
}

// SaveSettings writes the settings file with owner-only permissions.
func SaveSettings(dir string, s *Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "settings.json"), data, 0600)
}

// SaveSettings persists the config's settings to its resolved directory.
func (c *Config) SaveSettings() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SaveSettings(c.Dir, c.Settings)
}

// PageLimit returns the configured list page size.
func (c *Config) PageLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Settings.PageLimit
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Settings.NotificationsEnabled
}
