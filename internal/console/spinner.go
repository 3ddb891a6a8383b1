package console

import (
	"fmt"
	"time"
)

// spinnerFrames are the characters cycled by the status-line animation.
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// spinnerInterval is the animation tick. The spinner runs on its own timer
// so network calls proceed while the status line repaints.
const spinnerInterval = 80 * time.Millisecond

type spinner struct {
	label string
	stop  chan struct{}
	done  chan struct{}
}

// ShowSpinner starts the animated indicator on the status line. If a spinner
// is already running its label is replaced. In a non-interactive environment
// the spinner degrades to a single static line.
func (c *Console) ShowSpinner(label string) {
	c.mu.Lock()

	if !c.interactive {
		fmt.Fprintf(c.out, "%s...\n", label)
		c.mu.Unlock()
		return
	}

	c.flashGen++ // a spinner supersedes any pending flash revert

	if c.spinner != nil {
		c.spinner.label = label
		c.mu.Unlock()
		return
	}

	s := &spinner{
		label: label,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	c.spinner = s
	c.drawStatusLocked(spinnerStyle.Render(spinnerFrames[0]) + " " + label)
	c.mu.Unlock()

	go c.animate(s)
}

// HideSpinner stops the animation and clears the status line.
func (c *Console) HideSpinner() {
	c.stopSpinner()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.drawStatusLocked("")
}

// stopSpinner halts the animation goroutine and waits for it to exit, so no
// repaint can race a subsequent status or prompt draw.
func (c *Console) stopSpinner() {
	c.mu.Lock()
	s := c.spinner
	c.spinner = nil
	c.mu.Unlock()

	if s == nil {
		return
	}
	close(s.stop)
	<-s.done
}

// animate repaints the status line on a fixed tick until stopped.
func (c *Console) animate(s *spinner) {
	defer close(s.done)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			frame = (frame + 1) % len(spinnerFrames)
			c.mu.Lock()
			c.drawStatusLocked(spinnerStyle.Render(spinnerFrames[frame]) + " " + s.label)
			c.mu.Unlock()
		}
	}
}
