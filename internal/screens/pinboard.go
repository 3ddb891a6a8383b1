package screens

import (
	"strings"

	"github.com/quartershq/quarters/internal/nav"
)

func (h *Handlers) pinboardList(sc nav.PinboardList) nav.Action {
	h.con.ShowSpinner("Loading pinboard")
	posts, err := h.api.ListPosts(h.ctx, sc.Limit)
	h.con.HideSpinner()
	if err != nil {
		return h.fetchFailed("pinboard", err)
	}

	h.con.SetHelpText("number · /refresh · /back · /home · /quit")
	defer h.con.ResetHelpText()

	annotation := ""
	for {
		var b strings.Builder
		b.WriteString(header("Pinboard"))
		if len(posts) == 0 {
			b.WriteString(mutedStyle.Render("No posts yet.") + "\n")
		} else {
			b.WriteString(postsTable(posts) + "\n")
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
		if idx, ok := parseSelection(input, len(posts)); ok {
			h.con.ShowSpinner("Loading post")
			post, err := h.api.GetPost(h.ctx, posts[idx].ID)
			h.con.HideSpinner()
			if err != nil {
				h.con.ShowError("Could not load post")
				annotation = err.Error()
				continue
			}
			return nav.Push{Screen: nav.PinboardDetail{Post: *post}}
		}
		annotation = "Unknown command: " + input
	}
}

// pinboardDetail is pure display of an already fetched post. Anything that
// is not a recognized command goes back to the list.
func (h *Handlers) pinboardDetail(sc nav.PinboardDetail) nav.Action {
	p := sc.Post

	var b strings.Builder
	b.WriteString(header(p.Title))
	meta := make([]string, 0, 2)
	if p.Author != "" {
		meta = append(meta, "by "+p.Author)
	}
	if p.CreatedAt != "" {
		meta = append(meta, shortDate(p.CreatedAt))
	}
	if len(meta) > 0 {
		b.WriteString(mutedStyle.Render(strings.Join(meta, " on ")) + "\n\n")
	}
	b.WriteString(wrap(p.Body, h.con.Width()) + "\n")
	h.con.RenderContent(b.String())

	line, err := h.con.PromptUser()
	if err != nil {
		return nav.Quit{}
	}
	if action, ok := globalAction(line); ok {
		return action
	}
	return nav.Back{}
}
