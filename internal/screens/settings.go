package screens

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/quartershq/quarters/internal/api"
	"github.com/quartershq/quarters/internal/nav"
)

// settings fetches profile and server preferences concurrently; the two
// reads are independent.
func (h *Handlers) settings(sc nav.Settings) nav.Action {
	h.con.ShowSpinner("Loading settings")

	var (
		wg         sync.WaitGroup
		profile    *api.Profile
		profileErr error
		prefs      api.MobileSettings
		prefsErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		profile, profileErr = h.api.GetProfile(h.ctx)
	}()
	go func() {
		defer wg.Done()
		prefs, prefsErr = h.api.GetMobileSettings(h.ctx)
	}()
	wg.Wait()
	h.con.HideSpinner()

	if profileErr != nil {
		return h.fetchFailed("settings", profileErr)
	}
	if prefsErr != nil {
		return h.fetchFailed("settings", prefsErr)
	}

	annotation := ""
	for {
		var b strings.Builder
		b.WriteString(header("Settings"))

		b.WriteString(userStyle.Render("Profile") + "\n")
		b.WriteString("  Email: " + profile.Email + "\n")
		if profile.Name != "" {
			b.WriteString("  Name: " + profile.Name + "\n")
		}
		if profile.Timezone != "" {
			b.WriteString("  Timezone: " + profile.Timezone + "\n")
		}

		if len(prefs) > 0 {
			b.WriteString("\n" + userStyle.Render("Preferences") + "\n")
			keys := make([]string, 0, len(prefs))
			for k := range prefs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b.WriteString(fmt.Sprintf("  %s: %v\n", k, prefs[k]))
			}
		}

		b.WriteString("\n" + userStyle.Render("Local") + "\n")
		b.WriteString(fmt.Sprintf("  Notifications: %v\n", h.cfg.NotificationsEnabled()))
		b.WriteString(fmt.Sprintf("  Page limit: %d\n", h.cfg.PageLimit()))

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
