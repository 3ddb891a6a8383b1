package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	qerrors "github.com/quartershq/quarters/internal/errors"
)

const promptGlyph = "› "

// PromptUser suspends the caller until the user submits a line or cancels.
// The submitted text is returned on Enter; Ctrl+C (SIGINT) or end of input
// yields a cancellation error (qerrors.KindCancelled). The input-reading
// resource and the signal subscription are released on every exit path.
func (c *Console) PromptUser() (string, error) {
	// The spinner never animates while a prompt is waiting.
	c.stopSpinner()

	if !c.interactive {
		line, err := c.ncIn.readLine()
		if err != nil {
			return "", qerrors.PromptCancelled()
		}
		return line, nil
	}

	c.mu.Lock()
	c.drawStatusLocked("")
	c.drawToolbarRowLocked(c.promptRow(), promptStyle.Render(promptGlyph))
	// Park the cursor after the prompt glyph so typed characters echo there.
	fmt.Fprintf(c.out, "\x1b[%d;%dH", c.promptRow(), len([]rune(promptGlyph))+1)
	c.mu.Unlock()

	reader, err := c.newCancelReader(c.in)
	if err != nil {
		// Positioning still works, cancellation doesn't. Fall back to a
		// plain read rather than refusing input.
		return c.readPlainLine()
	}
	defer reader.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	released := make(chan struct{})
	defer close(released)
	go func() {
		select {
		case <-sig:
			reader.Cancel()
		case <-released:
		}
	}()

	line, err := readLine(reader)
	if err != nil {
		// Cancelled or stream closed; either way the prompt is over.
		c.mu.Lock()
		c.drawToolbarRowLocked(c.promptRow(), "")
		c.mu.Unlock()
		return "", qerrors.PromptCancelled()
	}

	c.mu.Lock()
	c.drawToolbarRowLocked(c.promptRow(), "")
	c.mu.Unlock()
	return line, nil
}

// readLine reads bytes until a newline. One byte at a time keeps no
// read-ahead buffered in a reader that is torn down after every prompt.
func readLine(r io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(b.String(), "\r"), nil
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
	}
}

func (c *Console) readPlainLine() (string, error) {
	line, err := readLine(c.in)
	if err != nil {
		return "", qerrors.PromptCancelled()
	}
	return line, nil
}

// nonInteractiveReader buffers stdin when the console is not attached to a
// terminal, so repeated prompts consume sequential lines.
type nonInteractiveReader struct {
	r *bufio.Reader
}

func newNonInteractiveReader(in io.Reader) *nonInteractiveReader {
	return &nonInteractiveReader{r: bufio.NewReader(in)}
}

func (n *nonInteractiveReader) readLine() (string, error) {
	line, err := n.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
