package auth

import (
	"context"
	"time"

	"github.com/quartershq/quarters/internal/config"
	"github.com/quartershq/quarters/internal/logger"
)

// IdentityProvider is the slice of the provider the bridge needs. *Provider
// implements it; tests substitute a fake.
type IdentityProvider interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*config.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*config.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Bridge holds the in-memory session and keeps the session file in sync
// with it. It is the only component that mutates the session.
type Bridge struct {
	provider IdentityProvider
	cfg      *config.Config
	session  *config.Session
}

// NewBridge creates a session bridge. The session starts empty; call
// Bootstrap or Restore to establish one.
func NewBridge(provider IdentityProvider, cfg *config.Config) *Bridge {
	return &Bridge{provider: provider, cfg: cfg}
}

// AccessToken implements api.TokenSource. Empty when signed out.
func (b *Bridge) AccessToken() string {
	if b.session == nil {
		return ""
	}
	return b.session.AccessToken
}

// ActiveSession returns the in-memory session, nil when signed out.
func (b *Bridge) ActiveSession() *config.Session {
	return b.session
}

// Restore attempts to establish a session without user interaction: the
// in-memory session wins, then a valid cached session, then a silent
// refresh of an expired cached session. Returns nil when none of those
// produce a session.
func (b *Bridge) Restore(ctx context.Context) *config.Session {
	if b.session != nil {
		return b.session
	}

	cached, err := config.LoadSession(b.cfg.SessionPath())
	if err != nil {
		logger.Warn("auth: cached session unreadable: %v", err)
		return nil
	}
	if cached == nil {
		return nil
	}

	if !cached.Expired(time.Now()) {
		b.adopt(cached)
		return b.session
	}

	logger.Debug("auth: cached session expired, attempting silent refresh")
	refreshed, err := b.provider.Refresh(ctx, cached.RefreshToken)
	if err != nil {
		logger.Info("auth: silent refresh failed: %v", err)
		// The cached session is proven invalid; drop it.
		b.discardCache()
		return nil
	}
	b.adopt(refreshed)
	return b.session
}

// SignOut revokes the session with the provider (best effort) and always
// clears the in-memory session and the session file.
func (b *Bridge) SignOut(ctx context.Context) error {
	var err error
	if b.session != nil {
		if serr := b.provider.SignOut(ctx, b.session.AccessToken); serr != nil {
			logger.Warn("auth: provider sign-out failed: %v", serr)
			err = serr
		}
	}
	b.session = nil
	b.discardCache()
	return err
}

// adopt installs a session in memory and persists it unless caching is
// disabled.
func (b *Bridge) adopt(s *config.Session) {
	b.session = s
	if b.cfg.NoSessionCache {
		return
	}
	if err := config.SaveSession(b.cfg.SessionPath(), s); err != nil {
		logger.Warn("auth: failed to cache session: %v", err)
	}
}

func (b *Bridge) discardCache() {
	if err := config.DeleteSession(b.cfg.SessionPath()); err != nil {
		logger.Warn("auth: failed to delete cached session: %v", err)
	}
}
