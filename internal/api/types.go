package api

import "fmt"

// Post is a pinboard entry. List responses may omit the body; the detail
// endpoint returns the full post.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Body      string `json:"body,omitempty"`
	Pinned    bool   `json:"pinned,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Agent is a remotely managed AI teammate.
type Agent struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Hired       bool   `json:"hired"`
}

// Thread is a conversation summary as returned by the thread list endpoint.
type Thread struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	AgentKeys    []string `json:"agent_keys,omitempty"`
	MessageCount int      `json:"message_count"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

// Attachment is a file attached to a chat message.
type Attachment struct {
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// ChatMessage is one message within a thread.
type ChatMessage struct {
	ID          string       `json:"id,omitempty"`
	Role        string       `json:"role"`
	Author      string       `json:"author,omitempty"`
	Content     string       `json:"content"`
	CreatedAt   string       `json:"created_at,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ThreadDetail is the full thread payload: summary, messages in order, and
// the server-side total (which may exceed len(Messages) for long threads).
type ThreadDetail struct {
	Thread        Thread        `json:"thread"`
	Messages      []ChatMessage `json:"messages"`
	TotalMessages int           `json:"total_messages"`
}

// File is one entry in the workspace file listing.
type File struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// Profile is the signed-in user's profile.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// MobileSettings is the server-side preference map shown on the settings
// screen. Keys are free-form; the client displays them verbatim.
type MobileSettings map[string]any

// ManageResult is the response of the agent manage endpoint.
type ManageResult struct {
	Message string `json:"message"`
}

// Error is a non-2xx API response. The server's human-readable detail and
// the HTTP status are surfaced to the user verbatim.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.StatusCode)
}
