package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func sessionFixture() *Session {
	return &Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
		User:         User{ID: "user-1", Email: "a@b.com"},
	}
}

func TestSession_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	if err := SaveSession(path, sessionFixture()); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}

	loaded, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession() error: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadSession() returned nil session")
	}
	if loaded.AccessToken != "access-token" {
		t.Errorf("AccessToken = %q", loaded.AccessToken)
	}
	if loaded.User.Email != "a@b.com" {
		t.Errorf("User.Email = %q", loaded.User.Email)
	}
}

func TestLoadSession_Missing(t *testing.T) {
	s, err := LoadSession(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("LoadSession() error: %v", err)
	}
	if s != nil {
		t.Error("expected nil session for missing file")
	}
}

func TestLoadSession_EmptyTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSession(path)
	if err != nil {
		t.Fatalf("LoadSession() error: %v", err)
	}
	if s != nil {
		t.Error("expected nil session for empty token file")
	}
}

func TestDeleteSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveSession(path, sessionFixture()); err != nil {
		t.Fatal(err)
	}

	if err := DeleteSession(path); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be gone")
	}

	// Deleting again is not an error
	if err := DeleteSession(path); err != nil {
		t.Errorf("second DeleteSession() error: %v", err)
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt int64
		expired   bool
	}{
		{"no expiry recorded", 0, false},
		{"expires in an hour", now.Add(time.Hour).Unix(), false},
		{"expired an hour ago", now.Add(-time.Hour).Unix(), true},
		{"expires within skew window", now.Add(10 * time.Second).Unix(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{ExpiresAt: tt.expiresAt}
			if got := s.Expired(now); got != tt.expired {
				t.Errorf("Expired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestSaveSession_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveSession(path, sessionFixture()); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("session file mode = %v, want 0600", info.Mode().Perm())
	}
}
