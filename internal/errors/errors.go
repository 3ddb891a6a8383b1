// Package errors provides structured error types for the Quarters application.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindNetwork
	KindConfig
	KindAuth
	KindAPI
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindAuth:
		return "authentication error"
	case KindAPI:
		return "api error"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for Quarters.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Auth errors
func AuthSendFailed(email string, err error) error {
	return E(Op("auth.SendCode"), KindAuth, fmt.Sprintf("failed to send passcode to %s", email), err)
}

func AuthVerifyFailed(err error) error {
	return E(Op("auth.VerifyCode"), KindAuth, "passcode verification failed", err)
}

func AuthRefreshFailed(err error) error {
	return E(Op("auth.Refresh"), KindAuth, "session refresh failed", err)
}

func NoSession() error {
	return E(Op("auth.ActiveSession"), KindAuth, "not signed in")
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

// API errors
func APIRequestFailed(endpoint string, err error) error {
	return E(Op("api.Do"), KindNetwork, fmt.Sprintf("request to %s failed", endpoint), err)
}

// Prompt errors
func PromptCancelled() error {
	return E(Op("console.Prompt"), KindCancelled, "input cancelled")
}
