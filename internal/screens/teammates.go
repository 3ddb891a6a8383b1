package screens

import (
	"strings"

	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/nav"
)

func (h *Handlers) teammates(sc nav.Teammates) nav.Action {
	h.con.ShowSpinner("Loading teammates")
	agents, err := h.api.ListAgents(h.ctx)
	h.con.HideSpinner()
	if err != nil {
		return h.fetchFailed("teammates", err)
	}

	h.con.SetHelpText("add <n|key> · remove <n|key> · /refresh · /back · /home · /quit")
	defer h.con.ResetHelpText()

	annotation := ""
	for {
		var b strings.Builder
		b.WriteString(header("Teammates"))
		if len(agents) == 0 {
			b.WriteString(mutedStyle.Render("No agents available.") + "\n")
		} else {
			b.WriteString(agentsTable(agents) + "\n")
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

		verb, arg := splitCommand(input)
		switch verb {
		case "add", "remove":
			agent, ok := resolveAgent(agents, arg)
			if !ok {
				annotation = "No matching agent found: " + arg
				continue
			}
			h.con.ShowSpinner(verbLabel(verb) + " " + agent.Name)
			result, err := h.api.ManageAgent(h.ctx, agent.Key, verb)
			h.con.HideSpinner()
			if err != nil {
				h.con.ShowError("Could not " + verb + " " + agent.Name)
				annotation = err.Error()
				continue
			}
			if result != nil && result.Message != "" {
				h.con.ShowSuccess(result.Message)
			} else {
				h.con.ShowSuccess(agent.Name + " updated")
			}
			// Refetch so the catalog reflects the toggle.
			return nav.Stay{}
		default:
			annotation = "Unknown command: " + input
		}
	}
}

// resolveAgent accepts a 1-based position or a case-insensitive key.
func resolveAgent(agents []api.Agent, target string) (api.Agent, bool) {
	if target == "" {
		return api.Agent{}, false
	}
	if idx, ok := parseSelection(target, len(agents)); ok {
		return agents[idx], true
	}
	lowered := strings.ToLower(target)
	for _, a := range agents {
		if strings.ToLower(a.Key) == lowered {
			return a, true
		}
	}
	return api.Agent{}, false
}

func verbLabel(verb string) string {
	if verb == "add" {
		return "Hiring"
	}
	return "Removing"
}
