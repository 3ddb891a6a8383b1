package config

import (
	"encoding/json"
	"os"
	"time"
)

// User is the identity attached to a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the credential bundle issued by the identity provider.
// It is owned by the auth bridge; this package only persists it.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
	User         User   `json:"user"`
}

// expirySkew treats sessions expiring within this window as already expired,
// so a token is never handed out moments before the server rejects it.
const expirySkew = 30 * time.Second

// Expired reports whether the session's access token has expired.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return now.Add(expirySkew).Unix() >= s.ExpiresAt
}

// Expiry returns the access token expiry time, zero when unknown.
func (s *Session) Expiry() time.Time {
	if s.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.ExpiresAt, 0)
}

// LoadSession reads the cached session file. Returns (nil, nil) when no
// session is cached.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.AccessToken == "" && s.RefreshToken == "" {
		// An empty file is as good as no session
		return nil, nil
	}
	return &s, nil
}

// SaveSession writes the session file with owner-only permissions.
func SaveSession(path string, s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// DeleteSession removes the session file. Missing files are not an error.
func DeleteSession(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
