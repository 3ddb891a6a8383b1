package screens

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/quartershq/quarters/internal/api"
)

// Purple + cyan palette shared with the console toolbar.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	agentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22D3EE"))
	pinnedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

const maxColWidth = 60

func header(title string) string {
	return titleStyle.Render(title) + "\n\n"
}

func note(text string) string {
	if text == "" {
		return ""
	}
	return "\n" + mutedStyle.Render(text) + "\n"
}

// wrap reflows body text to the console width with a small margin.
func wrap(text string, width int) string {
	if width > 4 {
		width -= 2
	}
	return wordwrap.String(text, width)
}

// truncate shortens a cell to w columns, ellipsized.
func truncate(s string, w int) string {
	return runewidth.Truncate(s, w, "…")
}

func newTable() *uitable.Table {
	t := uitable.New()
	t.MaxColWidth = maxColWidth
	t.Wrap = false
	return t
}

func postsTable(posts []api.Post) string {
	t := newTable()
	t.AddRow("#", "TITLE", "AUTHOR", "DATE")
	for i, p := range posts {
		title := p.Title
		if p.Pinned {
			title = pinnedStyle.Render("📌 ") + title
		}
		t.AddRow(i+1, title, p.Author, shortDate(p.CreatedAt))
	}
	return t.String()
}

func agentsTable(agents []api.Agent) string {
	t := newTable()
	t.AddRow("#", "AGENT", "KEY", "STATUS", "ABOUT")
	for i, a := range agents {
		status := mutedStyle.Render("available")
		if a.Hired {
			status = agentStyle.Render("hired")
		}
		t.AddRow(i+1, a.Name, a.Key, status, truncate(a.Description, maxColWidth))
	}
	return t.String()
}

func threadsTable(threads []api.Thread) string {
	t := newTable()
	t.AddRow("#", "THREAD", "AGENTS", "MSGS", "UPDATED")
	for i, th := range threads {
		t.AddRow(i+1, truncate(th.Title, maxColWidth), strings.Join(th.AgentKeys, ", "), th.MessageCount, shortDate(th.UpdatedAt))
	}
	return t.String()
}

func filesTable(files []api.File) string {
	t := newTable()
	t.AddRow("#", "NAME", "SIZE", "TYPE", "UPDATED")
	for i, f := range files {
		t.AddRow(i+1, truncate(f.Name, maxColWidth), formatSize(f.Size), f.ContentType, shortDate(f.UpdatedAt))
	}
	return t.String()
}

// formatSize renders a byte count for the file listing.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// shortDate keeps the date part of an RFC 3339 timestamp. Anything that
// does not look like one is shown verbatim.
func shortDate(ts string) string {
	if len(ts) >= 10 && ts[4] == '-' && ts[7] == '-' {
		return ts[:10]
	}
	return ts
}
