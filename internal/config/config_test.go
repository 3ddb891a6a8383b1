package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad_ExplicitDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QUARTERS_CONFIG_DIR", dir)
	t.Setenv("QUARTERS_AUTH_URL", "https://auth.example.com")
	t.Setenv("QUARTERS_AUTH_ANON_KEY", "anon-key")
	t.Setenv("QUARTERS_API_URL", "https://api.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if cfg.AuthURL != "https://auth.example.com" {
		t.Errorf("AuthURL = %q", cfg.AuthURL)
	}
	if cfg.AuthAnonKey != "anon-key" {
		t.Errorf("AuthAnonKey = %q", cfg.AuthAnonKey)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", cfg.Warnings)
	}
}

func TestLoad_MissingValuesWarnButSucceed(t *testing.T) {
	t.Setenv("QUARTERS_CONFIG_DIR", t.TempDir())
	t.Setenv("QUARTERS_AUTH_URL", "")
	t.Setenv("QUARTERS_AUTH_ANON_KEY", "")
	t.Setenv("QUARTERS_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %d: %v", len(cfg.Warnings), cfg.Warnings)
	}
}

func TestLoad_XDGFallback(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("QUARTERS_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := filepath.Join(xdg, "quarters")
	if cfg.Dir != want {
		t.Errorf("Dir = %q, want %q", cfg.Dir, want)
	}
}

func TestLoad_DebugAndNoCacheFlags(t *testing.T) {
	t.Setenv("QUARTERS_CONFIG_DIR", t.TempDir())
	t.Setenv("QUARTERS_DEBUG", "true")
	t.Setenv("QUARTERS_NO_SESSION_CACHE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if !cfg.NoSessionCache {
		t.Error("NoSessionCache should be true")
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := &Settings{NotificationsEnabled: false, PageLimit: 50}
	if err := SaveSettings(dir, s); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	loaded, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if loaded.NotificationsEnabled {
		t.Error("NotificationsEnabled should be false")
	}
	if loaded.PageLimit != 50 {
		t.Errorf("PageLimit = %d, want 50", loaded.PageLimit)
	}
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	loaded, err := LoadSettings(t.TempDir())
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	def := DefaultSettings()
	if loaded.PageLimit != def.PageLimit {
		t.Errorf("PageLimit = %d, want default %d", loaded.PageLimit, def.PageLimit)
	}
	if loaded.NotificationsEnabled != def.NotificationsEnabled {
		t.Error("NotificationsEnabled should match default")
	}
}

func TestLoadSettings_InvalidPageLimit(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"page_limit": -1}`), 0600); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSettings(dir)
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if loaded.PageLimit != DefaultSettings().PageLimit {
		t.Errorf("PageLimit = %d, want default", loaded.PageLimit)
	}
}

func TestSaveSettings_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	dir := t.TempDir()
	if err := SaveSettings(dir, DefaultSettings()); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("settings file mode = %v, want 0600", info.Mode().Perm())
	}
}
