package screens

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/logger"
	"github.com/quartershq/quarters/internal/nav"
)

// dedupPrefixLen is how many graphemes of content feed the fallback
// message key.
const dedupPrefixLen = 30

func (h *Handlers) messageThread(sc nav.MessageThread) nav.Action {
	st := sc
	if len(st.Messages) == 0 || st.NeedsRefresh {
		h.con.ShowSpinner("Loading thread")
		detail, err := h.api.GetThread(h.ctx, st.ThreadID)
		h.con.HideSpinner()
		if err != nil {
			return h.fetchFailed("thread", err)
		}
		st.Messages = detail.Messages
		mergeDetail(&st, detail)
	}
	st.NeedsRefresh = false

	// Seed the seen set from the cache so polling never re-appends
	// messages already displayed.
	seen := make(map[string]struct{}, len(st.Messages))
	for i, m := range st.Messages {
		seen[dedupKey(m, i)] = struct{}{}
	}

	h.con.SetHelpText("type to send · /refresh · /back · /home · /quit")
	defer h.con.ResetHelpText()

	annotation := ""
	for {
		h.con.RenderContent(formatThread(st, annotation, h.con.Width()))
		annotation = ""

		line, err := h.con.PromptUser()
		if err != nil {
			return nav.Quit{}
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if action, ok := globalAction(input); ok {
			return action
		}
		if isRefresh(input) {
			n, err := h.refreshThread(&st, seen)
			if err != nil {
				h.con.ShowError("Could not refresh thread")
				annotation = err.Error()
				continue
			}
			if n == 0 {
				h.con.ShowSuccess("No new messages")
			}
			continue
		}

		// Anything else is message content.
		h.con.ShowSpinner("Sending")
		sent, err := h.api.SendMessage(h.ctx, st.ThreadID, input)
		h.con.HideSpinner()
		if err != nil {
			h.con.ShowError("Could not send message")
			annotation = err.Error()
			continue
		}
		if sent == nil {
			// Server acknowledged without echoing the message back.
			sent = &api.ChatMessage{ID: uuid.NewString(), Role: "user", Content: input}
		}
		if sent.ID == "" {
			sent.ID = uuid.NewString()
		}
		seen[dedupKey(*sent, len(st.Messages))] = struct{}{}
		st.Messages = append(st.Messages, *sent)
		st.TotalMessages++

		replies := h.pollReplies(&st, seen)
		if replies > 0 && h.cfg.NotificationsEnabled() {
			if err := h.notify(st.Title, replies); err != nil {
				logger.Debug("screens: reply notification failed: %v", err)
			}
		}
	}
}

// refreshThread refetches the full thread and appends unseen messages.
// Returns how many were new.
func (h *Handlers) refreshThread(st *nav.MessageThread, seen map[string]struct{}) (int, error) {
	h.con.ShowSpinner("Refreshing")
	detail, err := h.api.GetThread(h.ctx, st.ThreadID)
	h.con.HideSpinner()
	if err != nil {
		return 0, err
	}
	return appendUnseen(st, detail, seen), nil
}

// pollReplies waits for agent replies after a send: bounded refetch
// attempts with a fixed delay, stopping as soon as the server reports more
// messages than our baseline. Poll failures are logged and treated as "no
// new messages".
func (h *Handlers) pollReplies(st *nav.MessageThread, seen map[string]struct{}) int {
	baseline := st.TotalMessages
	h.con.ShowSpinner("Waiting for replies")
	defer h.con.HideSpinner()

	for attempt := 1; attempt <= pollAttempts; attempt++ {
		h.sleep(pollDelay)
		detail, err := h.api.GetThread(h.ctx, st.ThreadID)
		if err != nil {
			logger.Debug("screens: reply poll %d/%d failed: %v", attempt, pollAttempts, err)
			continue
		}
		if detail.TotalMessages <= baseline {
			continue
		}
		return appendUnseen(st, detail, seen)
	}
	return 0
}

// appendUnseen merges a fresh fetch into the cached state, appending only
// messages whose key has not been displayed yet.
func appendUnseen(st *nav.MessageThread, detail *api.ThreadDetail, seen map[string]struct{}) int {
	added := 0
	for i, m := range detail.Messages {
		key := dedupKey(m, i)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		st.Messages = append(st.Messages, m)
		added++
	}
	mergeDetail(st, detail)
	return added
}

// mergeDetail refreshes the scalar fields from a fetch. On a full load the
// caller replaces Messages separately.
func mergeDetail(st *nav.MessageThread, detail *api.ThreadDetail) {
	if len(st.Messages) == 0 {
		st.Messages = detail.Messages
	}
	st.TotalMessages = detail.TotalMessages
	if detail.Thread.Title != "" {
		st.Title = detail.Thread.Title
	}
}

// dedupKey derives a stable identity for a fetched message: the id when
// present, otherwise timestamp plus position plus a short content prefix.
func dedupKey(m api.ChatMessage, index int) string {
	if m.ID != "" {
		return m.ID
	}
	return m.CreatedAt + "#" + strconv.Itoa(index) + "#" + contentPrefix(m.Content, dedupPrefixLen)
}

// contentPrefix takes the first n grapheme clusters so multi-byte content
// is never split mid-rune.
func contentPrefix(s string, n int) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return b.String()
}

// formatThread renders the transcript window: the last maxHistory messages
// with a hidden-count indicator when the cache holds more.
func formatThread(st nav.MessageThread, annotation string, width int) string {
	var b strings.Builder
	title := st.Title
	if title == "" {
		title = "Thread"
	}
	b.WriteString(header(title))

	window := st.Messages
	if len(window) > maxHistory {
		hidden := len(window) - maxHistory
		window = window[len(window)-maxHistory:]
		b.WriteString(mutedStyle.Render(strconv.Itoa(hidden)+" older messages hidden") + "\n\n")
	}

	for _, m := range window {
		b.WriteString(formatMessage(m, width))
	}
	b.WriteString(note(annotation))
	return b.String()
}

func formatMessage(m api.ChatMessage, width int) string {
	label := m.Author
	if label == "" {
		label = m.Role
	}
	style := agentStyle
	if m.Role == "user" {
		style = userStyle
	}

	var b strings.Builder
	b.WriteString(style.Render(label))
	if m.CreatedAt != "" {
		b.WriteString("  " + mutedStyle.Render(shortDate(m.CreatedAt)))
	}
	b.WriteString("\n")
	b.WriteString(wrap(m.Content, width) + "\n")
	for _, a := range m.Attachments {
		b.WriteString(mutedStyle.Render("  attachment: "+a.Name) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
