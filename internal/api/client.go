// Package api is the JSON client for the workspace API: pinboard posts,
// agent teammates, chat threads and messages, files, and settings.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quartershq/quarters/internal/logger"
)

// TokenSource provides the bearer token for authenticated requests.
// The auth bridge implements it; the client never caches tokens itself,
// so a refresh mid-run is picked up on the next request.
type TokenSource interface {
	AccessToken() string
}

// Client talks to the workspace API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a client for the given base URL.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListPosts fetches up to limit pinboard posts.
func (c *Client) ListPosts(ctx context.Context, limit int) ([]Post, error) {
	var wrapper struct {
		Posts []Post `json:"posts"`
	}
	path := "/api/pinboard?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, path, &wrapper); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return wrapper.Posts, nil
}

// GetPost fetches a full pinboard post.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := c.getJSON(ctx, "/api/pinboard/"+url.PathEscape(id), &post); err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// ListAgents fetches the teammate catalog.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var wrapper struct {
		Agents []Agent `json:"agents"`
	}
	if err := c.getJSON(ctx, "/api/agents", &wrapper); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return wrapper.Agents, nil
}

// ManageAgent enables or disables a teammate. Action is "add" or "remove".
func (c *Client) ManageAgent(ctx context.Context, agentKey, action string) (*ManageResult, error) {
	body := map[string]string{"agent_key": agentKey, "action": action}
	var result ManageResult
	if err := c.postJSON(ctx, "/api/agents/manage", body, &result); err != nil {
		return nil, fmt.Errorf("manage agent: %w", err)
	}
	return &result, nil
}

// ListThreads fetches chat thread summaries.
func (c *Client) ListThreads(ctx context.Context) ([]Thread, error) {
	var wrapper struct {
		Threads []Thread `json:"threads"`
	}
	if err := c.getJSON(ctx, "/api/chat/threads", &wrapper); err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return wrapper.Threads, nil
}

// CreateThread starts a new conversation with the given agent.
func (c *Client) CreateThread(ctx context.Context, agentKey string) (*Thread, error) {
	body := map[string]string{"agent_key": agentKey}
	var thread Thread
	if err := c.postJSON(ctx, "/api/chat/threads", body, &thread); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return &thread, nil
}

// GetThread fetches a thread with its messages.
func (c *Client) GetThread(ctx context.Context, id string) (*ThreadDetail, error) {
	var detail ThreadDetail
	if err := c.getJSON(ctx, "/api/chat/threads/"+url.PathEscape(id), &detail); err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}
	return &detail, nil
}

// DeleteThread removes a thread.
func (c *Client) DeleteThread(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/chat/threads/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return parseError(resp)
	}
	return nil
}

// ClearThread removes all messages from a thread, keeping the thread.
func (c *Client) ClearThread(ctx context.Context, id string) error {
	var result ManageResult
	if err := c.postJSON(ctx, "/api/chat/threads/"+url.PathEscape(id)+"/clear", nil, &result); err != nil {
		return fmt.Errorf("clear thread: %w", err)
	}
	return nil
}

// SendMessage posts a message to a thread and returns the created message.
func (c *Client) SendMessage(ctx context.Context, threadID, content string) (*ChatMessage, error) {
	body := map[string]string{"content": content}
	var msg ChatMessage
	if err := c.postJSON(ctx, "/api/chat/threads/"+url.PathEscape(threadID)+"/messages", body, &msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &msg, nil
}

// ListFiles fetches up to limit workspace files.
func (c *Client) ListFiles(ctx context.Context, limit int) ([]File, error) {
	var wrapper struct {
		Files []File `json:"files"`
	}
	path := "/api/files?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, path, &wrapper); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return wrapper.Files, nil
}

// GetProfile fetches the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, "/api/profile", &profile); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// GetMobileSettings fetches the server-side preference map.
func (c *Client) GetMobileSettings(ctx context.Context) (MobileSettings, error) {
	var settings MobileSettings
	if err := c.getJSON(ctx, "/api/settings/mobile", &settings); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseError extracts the server's detail message from an error response.
// Servers are inconsistent about the field name, so several are tried.
func parseError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		logger.Debug("api: failed reading error body: %v", err)
		return apiErr
	}

	var body struct {
		Detail  string `json:"detail"`
		ErrMsg  string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Detail != "":
			apiErr.Detail = body.Detail
		case body.ErrMsg != "":
			apiErr.Detail = body.ErrMsg
		case body.Message != "":
			apiErr.Detail = body.Message
		case body.Msg != "":
			apiErr.Detail = body.Msg
		}
	}
	return apiErr
}
