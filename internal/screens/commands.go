package screens

import (
	"strconv"
	"strings"

	"github.com/quartershq/quarters/internal/nav"
)

// globalAction matches the commands available on every screen. Matching is
// exact on the whole trimmed and lowered input, never a prefix.
func globalAction(input string) (nav.Action, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/quit", "/exit":
		return nav.Quit{}, true
	case "/back":
		return nav.Back{}, true
	case "/home":
		return nav.GoHome{}, true
	}
	return nil, false
}

// isRefresh matches the list-screen refetch command.
func isRefresh(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/refresh", "/r":
		return true
	}
	return false
}

// parseSelection resolves a 1-based numeric selection against a list of n
// items. Returns the zero-based index.
func parseSelection(input string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// splitCommand separates a verb from its argument: "add 2" yields
// ("add", "2"). The verb is lowered; the argument keeps its case.
func splitCommand(input string) (verb, arg string) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return "", ""
	}
	verb = strings.ToLower(fields[0])
	arg = strings.Join(fields[1:], " ")
	return verb, arg
}
