// Package auth wraps the OTP identity provider and owns the session
// lifecycle: bootstrap, refresh, inline login, and sign-out.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quartershq/quarters/internal/config"
)

// Provider is the HTTP client for the identity provider. The anonymous key
// authenticates the client application; user credentials come from the OTP
// exchange.
type Provider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewProvider creates an identity provider client.
func NewProvider(baseURL, anonKey string) *Provider {
	return &Provider{
		baseURL: baseURL,
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendCode asks the provider to email a one-time passcode.
func (p *Provider) SendCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	resp, err := p.post(ctx, "/auth/v1/otp", body, "")
	if err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseProviderError(resp)
	}
	return nil
}

// VerifyCode exchanges an emailed passcode for a session.
func (p *Provider) VerifyCode(ctx context.Context, email, code string) (*config.Session, error) {
	body := map[string]string{"email": email, "token": code, "type": "email"}
	resp, err := p.post(ctx, "/auth/v1/verify", body, "")
	if err != nil {
		return nil, fmt.Errorf("verify code: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseProviderError(resp)
	}
	return decodeSession(resp.Body)
}

// Refresh exchanges a refresh token for a fresh session.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*config.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	resp, err := p.post(ctx, "/auth/v1/token?grant_type=refresh_token", body, "")
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseProviderError(resp)
	}
	return decodeSession(resp.Body)
}

// SignOut revokes the session server-side.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	resp, err := p.post(ctx, "/auth/v1/logout", nil, accessToken)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseProviderError(resp)
	}
	return nil
}

func (p *Provider) post(ctx context.Context, path string, body any, bearer string) (*http.Response, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", p.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return p.httpClient.Do(req)
}

func decodeSession(r io.Reader) (*config.Session, error) {
	var s config.Session
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.AccessToken == "" {
		return nil, fmt.Errorf("provider returned no access token")
	}
	return &s, nil
}

// parseProviderError surfaces the provider's human-readable message.
func parseProviderError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var body struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	detail := ""
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.ErrorDescription != "":
			detail = body.ErrorDescription
		case body.Msg != "":
			detail = body.Msg
		case body.Message != "":
			detail = body.Message
		}
	}
	if detail == "" {
		return fmt.Errorf("identity provider error (HTTP %d)", resp.StatusCode)
	}
	return fmt.Errorf("%s (HTTP %d)", detail, resp.StatusCode)
}
