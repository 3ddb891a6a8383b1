// Package nav holds the screen-navigation state machine: a tagged set of
// screen states, the actions handlers can return, and the Navigator that
// owns the back stack and applies transitions.
package nav

import (
	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/config"
	"github.com/quartershq/quarters/internal/logger"
)

// Screen is the closed set of navigable screen states. Each variant carries
// only what is needed to re-render that screen without a network round trip
// when re-entered via back.
type Screen interface {
	// Name is the stable tag used for dispatch and logging.
	Name() string
}

// Home is the session-carrying root screen.
type Home struct {
	Session *config.Session
}

func (Home) Name() string { return "home" }

// PinboardList shows up to Limit pinboard posts.
type PinboardList struct {
	Limit int
}

func (PinboardList) Name() string { return "pinboard" }

// PinboardDetail displays a previously fetched post snapshot.
type PinboardDetail struct {
	Post api.Post
}

func (PinboardDetail) Name() string { return "pinboard-detail" }

// Teammates shows the agent catalog. Always refetched.
type Teammates struct{}

func (Teammates) Name() string { return "teammates" }

// MessagesList shows the chat thread summaries. Always refetched.
type MessagesList struct{}

func (MessagesList) Name() string { return "messages" }

// MessageThread is the conversation view. Messages and TotalMessages cache
// the last fetch so re-entering via back skips a refetch unless NeedsRefresh
// is set.
type MessageThread struct {
	ThreadID      string
	Title         string
	Messages      []api.ChatMessage
	TotalMessages int
	NeedsRefresh  bool
}

func (MessageThread) Name() string { return "thread" }

// FilesList shows up to Limit workspace files.
type FilesList struct {
	Limit int
}

func (FilesList) Name() string { return "files" }

// Settings shows profile and preferences. Always refetched.
type Settings struct{}

func (Settings) Name() string { return "settings" }

// Action is the closed set of transitions a screen handler can return.
type Action interface {
	action()
}

// Push navigates forward, remembering the current screen for back.
type Push struct {
	Screen Screen
}

// Replace swaps the current screen without touching the stack.
type Replace struct {
	Screen Screen
}

// Stay re-runs the current screen; a non-nil Screen carries updated state.
type Stay struct {
	Screen Screen
}

// Back pops the stack, or falls back to Home when the stack is empty.
type Back struct{}

// GoHome resets to the session-carrying home screen and clears history.
type GoHome struct{}

// Quit ends the interactive loop.
type Quit struct{}

func (Push) action()    {}
func (Replace) action() {}
func (Stay) action()    {}
func (Back) action()    {}
func (GoHome) action()  {}
func (Quit) action()    {}

// Handler runs one screen visit and resolves to the next action. Handlers
// absorb their own failures; they never return an error.
type Handler func(Screen) Action

// Navigator owns the back stack and the current screen. It performs no I/O
// itself; each loop iteration dispatches to the handler and applies the
// returned action.
type Navigator struct {
	stack   []Screen
	current Screen
	home    func() Screen
	handle  Handler
}

// New creates a navigator. home builds the session-carrying root screen;
// the navigator starts there with an empty stack.
func New(home func() Screen, handle Handler) *Navigator {
	return &Navigator{
		home:    home,
		current: home(),
		handle:  handle,
	}
}

// Current returns the current screen.
func (n *Navigator) Current() Screen {
	return n.current
}

// Depth returns the back-stack depth.
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// Run drives the loop until a handler returns Quit.
func (n *Navigator) Run() {
	for {
		action := n.handle(n.current)
		if n.Apply(action) {
			return
		}
	}
}

// Apply performs one transition. It returns true when the loop should end.
func (n *Navigator) Apply(action Action) bool {
	switch a := action.(type) {
	case Push:
		n.stack = append(n.stack, n.current)
		n.current = a.Screen
	case Replace:
		n.current = a.Screen
	case Stay:
		if a.Screen != nil {
			n.current = a.Screen
		}
	case Back:
		if len(n.stack) == 0 {
			n.current = n.home()
			break
		}
		n.current = n.stack[len(n.stack)-1]
		n.stack = n.stack[:len(n.stack)-1]
	case GoHome:
		n.stack = n.stack[:0]
		n.current = n.home()
	case Quit:
		return true
	default:
		// The action set is closed; reaching this is a bug.
		logger.Error("nav: unknown action %T", action)
	}
	logger.Debug("nav: %s (stack depth %d)", n.current.Name(), len(n.stack))
	return false
}
