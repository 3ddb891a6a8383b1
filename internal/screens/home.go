package screens

import (
	"fmt"
	"strings"

	"github.com/quartershq/quarters/internal/nav"
)

// menu entries in display order. Numeric selection and name match both work.
var homeMenu = []struct {
	label string
	build func(h *Handlers) nav.Screen
}{
	{"Pinboard", func(h *Handlers) nav.Screen { return nav.PinboardList{Limit: h.cfg.PageLimit()} }},
	{"Teammates", func(h *Handlers) nav.Screen { return nav.Teammates{} }},
	{"Messages", func(h *Handlers) nav.Screen { return nav.MessagesList{} }},
	{"Files", func(h *Handlers) nav.Screen { return nav.FilesList{Limit: h.cfg.PageLimit()} }},
	{"Settings", func(h *Handlers) nav.Screen { return nav.Settings{} }},
}

func (h *Handlers) home(sc nav.Home) nav.Action {
	h.con.SetHelpText("1-5 · name · /quit")
	defer h.con.ResetHelpText()

	annotation := ""
	for {
		var b strings.Builder
		b.WriteString(header("Quarters"))
		if sc.Session != nil && sc.Session.User.Email != "" {
			b.WriteString(mutedStyle.Render("Signed in as "+sc.Session.User.Email) + "\n\n")
		}
		for i, item := range homeMenu {
			b.WriteString(menuLine(i+1, item.label))
		}
		b.WriteString(note(annotation))
		h.con.RenderContent(b.String())
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
		if idx, ok := parseSelection(input, len(homeMenu)); ok {
			return nav.Push{Screen: homeMenu[idx].build(h)}
		}
		if screen, ok := menuByName(h, input); ok {
			return nav.Push{Screen: screen}
		}
		annotation = "Unknown command: " + input
	}
}

func menuLine(n int, label string) string {
	return userStyle.Render(fmt.Sprintf("  %d.", n)) + " " + label + "\n"
}

func menuByName(h *Handlers, input string) (nav.Screen, bool) {
	lowered := strings.ToLower(input)
	for _, item := range homeMenu {
		if strings.ToLower(item.label) == lowered {
			return item.build(h), true
		}
	}
	return nil, false
}
