package screens

import (
	"context"
	"testing"
	"time"

	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/config"
	qerrors "github.com/quartershq/quarters/internal/errors"
)

// fakeConsole scripts prompt responses and records everything shown.
// Exhausting the script cancels the prompt, which handlers treat as quit.
type fakeConsole struct {
	lines     []string
	rendered  []string
	successes []string
	failures  []string
	spinners  []string
	helps     []string
	resets    int
}

func (c *fakeConsole) RenderContent(text string) { c.rendered = append(c.rendered, text) }
func (c *fakeConsole) ShowSpinner(label string)  { c.spinners = append(c.spinners, label) }
func (c *fakeConsole) HideSpinner()              {}
func (c *fakeConsole) ShowSuccess(text string)   { c.successes = append(c.successes, text) }
func (c *fakeConsole) ShowError(text string)     { c.failures = append(c.failures, text) }
func (c *fakeConsole) SetHelpText(hint string)   { c.helps = append(c.helps, hint) }
func (c *fakeConsole) ResetHelpText()            { c.resets++ }
func (c *fakeConsole) Width() int                { return 80 }

func (c *fakeConsole) PromptUser() (string, error) {
	if len(c.lines) == 0 {
		return "", qerrors.PromptCancelled()
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	return line, nil
}

func (c *fakeConsole) lastRender() string {
	if len(c.rendered) == 0 {
		return ""
	}
	return c.rendered[len(c.rendered)-1]
}

// fakeAPI returns scripted data and records mutating calls.
type fakeAPI struct {
	posts    []api.Post
	postsErr error
	post     *api.Post
	postErr  error

	agents      []api.Agent
	agentsErr   error
	manageCalls []string
	manageErr   error

	threads     []api.Thread
	threadsErr  error
	created     *api.Thread
	createErr   error
	createCalls []string
	deleteCalls []string
	deleteErr   error
	clearCalls  []string
	clearErr    error

	detail         *api.ThreadDetail
	detailErr      error
	detailFn       func(call int) (*api.ThreadDetail, error)
	getThreadCalls int

	sent     []string
	sendResp *api.ChatMessage
	sendErr  error

	files    []api.File
	filesErr error

	profile    *api.Profile
	profileErr error
	mobile     api.MobileSettings
	mobileErr  error
}

func (f *fakeAPI) ListPosts(ctx context.Context, limit int) ([]api.Post, error) {
	return f.posts, f.postsErr
}

func (f *fakeAPI) GetPost(ctx context.Context, id string) (*api.Post, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}
	if f.post != nil {
		return f.post, nil
	}
	return &api.Post{ID: id}, nil
}

func (f *fakeAPI) ListAgents(ctx context.Context) ([]api.Agent, error) {
	return f.agents, f.agentsErr
}

func (f *fakeAPI) ManageAgent(ctx context.Context, agentKey, action string) (*api.ManageResult, error) {
	f.manageCalls = append(f.manageCalls, agentKey+":"+action)
	if f.manageErr != nil {
		return nil, f.manageErr
	}
	return &api.ManageResult{Message: action + " ok"}, nil
}

func (f *fakeAPI) ListThreads(ctx context.Context) ([]api.Thread, error) {
	return f.threads, f.threadsErr
}

func (f *fakeAPI) CreateThread(ctx context.Context, agentKey string) (*api.Thread, error) {
	f.createCalls = append(f.createCalls, agentKey)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.created != nil {
		return f.created, nil
	}
	return &api.Thread{ID: "t-new", Title: "New thread"}, nil
}

func (f *fakeAPI) GetThread(ctx context.Context, id string) (*api.ThreadDetail, error) {
	f.getThreadCalls++
	if f.detailFn != nil {
		return f.detailFn(f.getThreadCalls)
	}
	return f.detail, f.detailErr
}

func (f *fakeAPI) DeleteThread(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

func (f *fakeAPI) ClearThread(ctx context.Context, id string) error {
	f.clearCalls = append(f.clearCalls, id)
	return f.clearErr
}

func (f *fakeAPI) SendMessage(ctx context.Context, threadID, content string) (*api.ChatMessage, error) {
	f.sent = append(f.sent, content)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sendResp != nil {
		return f.sendResp, nil
	}
	return &api.ChatMessage{ID: "m-sent", Role: "user", Content: content}, nil
}

func (f *fakeAPI) ListFiles(ctx context.Context, limit int) ([]api.File, error) {
	return f.files, f.filesErr
}

func (f *fakeAPI) GetProfile(ctx context.Context) (*api.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeAPI) GetMobileSettings(ctx context.Context) (api.MobileSettings, error) {
	return f.mobile, f.mobileErr
}

func testCfg(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Dir: t.TempDir(), Settings: config.DefaultSettings()}
}

// newTestHandlers wires a handler set with no real delays or desktop
// notifications. Returned ints track reply notifications.
func newTestHandlers(t *testing.T, backend *fakeAPI, con *fakeConsole) (*Handlers, *[]int) {
	t.Helper()
	h := New(context.Background(), backend, con, testCfg(t))
	h.sleep = func(time.Duration) {}
	var notified []int
	h.notify = func(threadTitle string, count int) error {
		notified = append(notified, count)
		return nil
	}
	return h, &notified
}
