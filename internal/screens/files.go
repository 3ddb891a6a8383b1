package screens

import (
	"strings"

	"github.com/quartershq/quarters/internal/nav"
)

// filesList is a read-only listing; only navigation commands are accepted.
func (h *Handlers) filesList(sc nav.FilesList) nav.Action {
	h.con.ShowSpinner("Loading files")
	files, err := h.api.ListFiles(h.ctx, sc.Limit)
	h.con.HideSpinner()
	if err != nil {
		return h.fetchFailed("files", err)
	}

	h.con.SetHelpText("/refresh · /back · /home · /quit")
	defer h.con.ResetHelpText()

	annotation := ""
	for {
		var b strings.Builder
		b.WriteString(header("Files"))
		if len(files) == 0 {
			b.WriteString(mutedStyle.Render("No files in this workspace.") + "\n")
		} else {
			b.WriteString(filesTable(files) + "\n")
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
		annotation = "Unknown command: " + input
	}
}
