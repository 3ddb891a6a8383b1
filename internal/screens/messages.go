package screens

import (
	"strings"

	"github.com/quartershq/quarters/internal/nav"
)

func (h *Handlers) messagesList(sc nav.MessagesList) nav.Action {
	h.con.ShowSpinner("Loading messages")
	threads, err := h.api.ListThreads(h.ctx)
	h.con.HideSpinner()
	if err != nil {
		return h.fetchFailed("messages", err)
	}

	h.con.SetHelpText("number · new <key> · delete <n> · clear <n> · /refresh · /back")
	defer h.con.ResetHelpText()

	annotation := ""
	for {
		var b strings.Builder
		b.WriteString(header("Messages"))
		if len(threads) == 0 {
			b.WriteString(mutedStyle.Render("No threads yet. Start one with: new <agent_key>") + "\n")
		} else {
			b.WriteString(threadsTable(threads) + "\n")
		}
		b.WriteString(note(annotation))
		h.con.RenderContent(b.String())
		annotation = ""

		line, err := h.con.PromptUser()
		if err != nil {
			return nav.Quit{}
		}
		input := strings.TrimSpace(line)
		if input == "" || isRefresh(input) {
			return nav.Stay{}
		}
		if action, ok := globalAction(input); ok {
			return action
		}

		if isNumeric(input) {
			idx, ok := parseSelection(input, len(threads))
			if !ok {
				annotation = "Invalid thread selection: " + input
				continue
			}
			th := threads[idx]
			return nav.Push{Screen: nav.MessageThread{ThreadID: th.ID, Title: th.Title, NeedsRefresh: true}}
		}

		verb, arg := splitCommand(input)
		switch verb {
		case "new":
			if arg == "" {
				annotation = "Usage: new <agent_key>"
				continue
			}
			h.con.ShowSpinner("Creating thread")
			th, err := h.api.CreateThread(h.ctx, arg)
			h.con.HideSpinner()
			if err != nil {
				h.con.ShowError("Could not create thread")
				annotation = err.Error()
				continue
			}
			h.con.ShowSuccess("Thread created")
			return nav.Push{Screen: nav.MessageThread{ThreadID: th.ID, Title: th.Title, NeedsRefresh: true}}
		case "delete":
			idx, ok := parseSelection(arg, len(threads))
			if !ok {
				annotation = "Invalid thread selection: " + arg
				continue
			}
			h.con.ShowSpinner("Deleting thread")
			err := h.api.DeleteThread(h.ctx, threads[idx].ID)
			h.con.HideSpinner()
			if err != nil {
				h.con.ShowError("Could not delete thread")
				annotation = err.Error()
				continue
			}
			h.con.ShowSuccess("Thread deleted")
			return nav.Stay{}
		case "clear":
			idx, ok := parseSelection(arg, len(threads))
			if !ok {
				annotation = "Invalid thread selection: " + arg
				continue
			}
			h.con.ShowSpinner("Clearing thread")
			err := h.api.ClearThread(h.ctx, threads[idx].ID)
			h.con.HideSpinner()
			if err != nil {
				h.con.ShowError("Could not clear thread")
				annotation = err.Error()
				continue
			}
			h.con.ShowSuccess("Thread cleared")
			return nav.Stay{}
		default:
			annotation = "Unknown command: " + input
		}
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
