// Package console owns the terminal. It keeps a three-line toolbar (status,
// prompt, help) fixed at the bottom of the screen while content scrolls in
// the region above, runs the spinner animation, and reads line input. No
// other package writes to the terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// toolbarRows is the number of fixed rows at the bottom: status, prompt, help.
const toolbarRows = 3

// flashDuration is how long a success/error status stays before reverting
// to idle, unless superseded by another status call first.
const flashDuration = 1800 * time.Millisecond

const defaultHelpText = "/back · /home · /quit"

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
)

// Console renders the interactive terminal UI. All writes to the terminal go
// through it, serialized by an internal mutex so the spinner repaint never
// interleaves with content writes.
type Console struct {
	mu sync.Mutex // guards terminal writes and the fields below

	out         io.Writer
	in          io.Reader
	interactive bool
	active      bool

	width  int
	height int

	helpText string

	spinner  *spinner
	flashGen int // invalidates pending flash-revert timers

	// ncIn buffers non-interactive input so PromptUser can read lines
	ncIn *nonInteractiveReader

	// newCancelReader is swapped out in tests
	newCancelReader func(io.Reader) (cancelreader.CancelReader, error)
}

// New creates a console on stdin/stdout, detecting whether the output is a
// terminal. When it is not, every visual operation degrades to plain
// sequential writes.
func New() *Console {
	interactive := isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
	return NewWithIO(os.Stdin, os.Stdout, interactive)
}

// NewWithIO creates a console over explicit streams. Used by tests and by
// the non-interactive degradation path.
func NewWithIO(in io.Reader, out io.Writer, interactive bool) *Console {
	c := &Console{
		out:             out,
		in:              in,
		interactive:     interactive,
		helpText:        defaultHelpText,
		newCancelReader: cancelreader.NewReader,
	}
	if !interactive {
		c.ncIn = newNonInteractiveReader(in)
	}
	return c
}

// Init marks the console active and claims the bottom rows of the terminal.
// In a non-interactive environment this is a no-op.
func (c *Console) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.active = true
	if !c.interactive {
		return nil
	}

	c.measure()
	// Reserve the toolbar rows: content scrolls in the region above them.
	fmt.Fprint(c.out, "\x1b[2J\x1b[H")
	fmt.Fprintf(c.out, "\x1b[1;%dr", c.contentRows())
	c.drawHelpLocked()
	return nil
}

// Close releases the terminal: stops the spinner, resets the scroll region,
// and moves the cursor below the toolbar.
func (c *Console) Close() {
	c.stopSpinner()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return
	}
	c.active = false
	c.flashGen++ // cancel any pending flash revert

	if c.interactive {
		fmt.Fprint(c.out, "\x1b[r") // reset scroll region
		fmt.Fprintf(c.out, "\x1b[%d;1H\n", c.height)
	}
}

// RenderContent clears the content region and writes text starting at the
// top. Content is treated as opaque text; this never fails on odd input.
func (c *Console) RenderContent(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.interactive {
		fmt.Fprintln(c.out, text)
		return
	}

	c.measure()
	// Clear the scroll region without touching the toolbar rows.
	for row := 1; row <= c.contentRows(); row++ {
		fmt.Fprintf(c.out, "\x1b[%d;1H\x1b[2K", row)
	}
	fmt.Fprint(c.out, "\x1b[1;1H")
	fmt.Fprint(c.out, strings.ReplaceAll(text, "\n", "\r\n"))
	c.drawHelpLocked()
}

// ShowSuccess replaces the status line with a check-prefixed message that
// auto-reverts to idle after a short delay.
func (c *Console) ShowSuccess(text string) {
	c.stopSpinner()
	c.flash(successStyle.Render("✓ " + text))
}

// ShowError replaces the status line with a cross-prefixed message that
// auto-reverts to idle after a short delay.
func (c *Console) ShowError(text string) {
	c.stopSpinner()
	c.flash(errorStyle.Render("✗ " + text))
}

func (c *Console) flash(line string) {
	c.mu.Lock()
	c.flashGen++
	gen := c.flashGen
	c.drawStatusLocked(line)
	c.mu.Unlock()

	time.AfterFunc(flashDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.flashGen != gen || !c.active {
			return // superseded by a newer status
		}
		c.drawStatusLocked("")
	})
}

// SetHelpText overrides the bottom help line for the duration of a screen.
func (c *Console) SetHelpText(hint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.helpText = hint
	c.drawHelpLocked()
}

// ResetHelpText restores the default help line. Handlers call this on every
// exit path.
func (c *Console) ResetHelpText() {
	c.SetHelpText(defaultHelpText)
}

// Width returns the usable content width, or a reasonable default when the
// size is unknown.
func (c *Console) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.measure()
	if c.width <= 0 {
		return 80
	}
	return c.width
}

// contentRows returns the last row of the scrollable content region.
func (c *Console) contentRows() int {
	rows := c.height - toolbarRows
	if rows < 1 {
		return 1
	}
	return rows
}

// measure refreshes the cached terminal size. Caller holds mu.
func (c *Console) measure() {
	if !c.interactive {
		return
	}
	if f, ok := c.out.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil {
			c.width, c.height = w, h
			return
		}
	}
	if c.width == 0 {
		c.width, c.height = 80, 24
	}
}

// statusRow/promptRow/helpRow are the fixed toolbar rows.
func (c *Console) statusRow() int { return c.height - 2 }
func (c *Console) promptRow() int { return c.height - 1 }
func (c *Console) helpRow() int   { return c.height }

// drawStatusLocked writes the status row. Caller holds mu.
func (c *Console) drawStatusLocked(line string) {
	if !c.interactive {
		if line != "" {
			fmt.Fprintln(c.out, ansi.Strip(line))
		}
		return
	}
	if !c.active {
		return
	}
	c.drawToolbarRowLocked(c.statusRow(), line)
}

// drawHelpLocked writes the help row. Caller holds mu.
func (c *Console) drawHelpLocked() {
	if !c.interactive || !c.active {
		return
	}
	c.drawToolbarRowLocked(c.helpRow(), helpStyle.Render(c.helpText))
}

// drawToolbarRowLocked paints one toolbar row, clipped to the terminal
// width, and restores the cursor to where it was. Caller holds mu.
func (c *Console) drawToolbarRowLocked(row int, line string) {
	if c.width > 0 {
		line = ansi.Truncate(line, c.width, "…")
	}
	fmt.Fprintf(c.out, "\x1b7\x1b[%d;1H\x1b[2K%s\x1b8", row, line)
}
