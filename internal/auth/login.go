package auth

import (
	"context"
	"strings"

	"github.com/quartershq/quarters/internal/config"
	"github.com/quartershq/quarters/internal/logger"
)

// UI is the slice of the console the login flow needs.
type UI interface {
	RenderContent(text string)
	ShowSpinner(label string)
	HideSpinner()
	ShowSuccess(text string)
	ShowError(text string)
	PromptUser() (string, error)
}

// loginState enumerates the inline login machine's states.
type loginState int

const (
	stateAwaitEmail loginState = iota
	stateSendingCode
	stateAwaitCode
	stateVerifyingCode
	stateDone
)

// LoginOptions pre-seed the flow from command-line flags. Each value is
// consumed at most once; after a failure the flow falls back to prompting.
type LoginOptions struct {
	Email string
	Code  string
}

// InlineLogin runs the email → passcode flow on the console. A successful
// verification installs and returns the session. Cancelling any prompt
// aborts the whole flow and returns (nil, nil): no session, no error.
func (b *Bridge) InlineLogin(ctx context.Context, ui UI, opts LoginOptions) (*config.Session, error) {
	var (
		email      string
		code       string
		state      = stateAwaitEmail
		seedEmail  = strings.TrimSpace(opts.Email)
		seedCode   = strings.TrimSpace(opts.Code)
		emailError string
		codeError  string
	)

	for state != stateDone {
		switch state {
		case stateAwaitEmail:
			if seedEmail != "" {
				email = seedEmail
				seedEmail = ""
				state = stateSendingCode
				continue
			}
			prompt := "Sign in\n\nEnter your email address to receive a one-time passcode."
			if emailError != "" {
				prompt += "\n\n" + emailError
			}
			ui.RenderContent(prompt)
			line, err := ui.PromptUser()
			if err != nil {
				logger.Info("auth: login cancelled at email prompt")
				return nil, nil
			}
			email = strings.TrimSpace(line)
			if email == "" {
				emailError = "Email is required."
				continue
			}
			emailError = ""
			state = stateSendingCode

		case stateSendingCode:
			ui.ShowSpinner("Sending passcode")
			err := b.provider.SendCode(ctx, email)
			ui.HideSpinner()
			if err != nil {
				// The whole flow restarts from the email step.
				ui.ShowError("Could not send passcode")
				emailError = "Could not send passcode: " + err.Error()
				state = stateAwaitEmail
				continue
			}
			state = stateAwaitCode

		case stateAwaitCode:
			if seedCode != "" {
				code = seedCode
				seedCode = ""
				state = stateVerifyingCode
				continue
			}
			prompt := "Check your email\n\nEnter the passcode sent to " + email + "."
			if codeError != "" {
				prompt += "\n\n" + codeError
			}
			ui.RenderContent(prompt)
			line, err := ui.PromptUser()
			if err != nil {
				logger.Info("auth: login cancelled at passcode prompt")
				return nil, nil
			}
			code = strings.TrimSpace(line)
			if code == "" {
				codeError = "Passcode is required."
				continue
			}
			codeError = ""
			state = stateVerifyingCode

		case stateVerifyingCode:
			ui.ShowSpinner("Verifying passcode")
			session, err := b.provider.VerifyCode(ctx, email, code)
			ui.HideSpinner()
			if err != nil {
				// Retry verification without re-sending a code.
				ui.ShowError("Verification failed")
				codeError = "Verification failed: " + err.Error()
				state = stateAwaitCode
				continue
			}
			b.adopt(session)
			ui.ShowSuccess("Signed in as " + session.User.Email)
			state = stateDone
		}
	}

	return b.session, nil
}

// Bootstrap establishes a session for the interactive loop: restore first,
// then inline login. Returns nil when the user cancels login.
func (b *Bridge) Bootstrap(ctx context.Context, ui UI) (*config.Session, error) {
	if s := b.Restore(ctx); s != nil {
		return s, nil
	}
	return b.InlineLogin(ctx, ui, LoginOptions{})
}
