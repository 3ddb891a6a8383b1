// Package screens implements the per-screen handlers behind the navigator:
// each handler fetches what it needs, renders through the console, prompts
// for a command, and resolves to a navigation action. Handlers absorb their
// own failures.
package screens

import (
	"context"
	"time"

	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/config"
	"github.com/quartershq/quarters/internal/logger"
	"github.com/quartershq/quarters/internal/nav"
	"github.com/quartershq/quarters/internal/notification"
)

// Console is the slice of the terminal renderer handlers use.
type Console interface {
	RenderContent(text string)
	ShowSpinner(label string)
	HideSpinner()
	ShowSuccess(text string)
	ShowError(text string)
	PromptUser() (string, error)
	SetHelpText(hint string)
	ResetHelpText()
	Width() int
}

// API is the workspace backend as the handlers consume it. *api.Client
// implements it; tests substitute a fake.
type API interface {
	ListPosts(ctx context.Context, limit int) ([]api.Post, error)
	GetPost(ctx context.Context, id string) (*api.Post, error)
	ListAgents(ctx context.Context) ([]api.Agent, error)
	ManageAgent(ctx context.Context, agentKey, action string) (*api.ManageResult, error)
	ListThreads(ctx context.Context) ([]api.Thread, error)
	CreateThread(ctx context.Context, agentKey string) (*api.Thread, error)
	GetThread(ctx context.Context, id string) (*api.ThreadDetail, error)
	DeleteThread(ctx context.Context, id string) error
	ClearThread(ctx context.Context, id string) error
	SendMessage(ctx context.Context, threadID, content string) (*api.ChatMessage, error)
	ListFiles(ctx context.Context, limit int) ([]api.File, error)
	GetProfile(ctx context.Context) (*api.Profile, error)
	GetMobileSettings(ctx context.Context) (api.MobileSettings, error)
}

const (
	// maxHistory bounds how many cached messages a thread shows initially.
	maxHistory = 10

	// pollAttempts and pollDelay bound the reply-polling loop after a
	// message send.
	pollAttempts = 8
	pollDelay    = 1200 * time.Millisecond
)

// Handlers holds the shared collaborators for every screen handler.
type Handlers struct {
	ctx context.Context
	api API
	con Console
	cfg *config.Config

	// Swapped out by tests to avoid real delays and notifications.
	sleep  func(time.Duration)
	notify func(threadTitle string, count int) error
}

// New creates the screen handler set.
func New(ctx context.Context, backend API, con Console, cfg *config.Config) *Handlers {
	return &Handlers{
		ctx:    ctx,
		api:    backend,
		con:    con,
		cfg:    cfg,
		sleep:  time.Sleep,
		notify: notification.RepliesReceived,
	}
}

// Handle dispatches one screen visit. It implements nav.Handler.
func (h *Handlers) Handle(s nav.Screen) nav.Action {
	switch sc := s.(type) {
	case nav.Home:
		return h.home(sc)
	case nav.PinboardList:
		return h.pinboardList(sc)
	case nav.PinboardDetail:
		return h.pinboardDetail(sc)
	case nav.Teammates:
		return h.teammates(sc)
	case nav.MessagesList:
		return h.messagesList(sc)
	case nav.MessageThread:
		return h.messageThread(sc)
	case nav.FilesList:
		return h.filesList(sc)
	case nav.Settings:
		return h.settings(sc)
	default:
		// The screen set is closed; reaching this is a bug.
		logger.Error("screens: no handler for %T", s)
		return nav.GoHome{}
	}
}

// fetchFailed reports a fetch error and resolves the screen to Back.
func (h *Handlers) fetchFailed(what string, err error) nav.Action {
	logger.Warn("screens: %s fetch failed: %v", what, err)
	h.con.ShowError("Could not load " + what)
	h.con.RenderContent("Could not load " + what + "\n\n" + err.Error())
	return nav.Back{}
}
