// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/quartershq/quarters/internal/logger"
)

// notify is the underlying delivery function. Tests swap it out.
var notify = beeep.Notify

// SetNotifier replaces the delivery function. Intended for tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores the default delivery function.
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("notification: title=%q message=%q", title, message)
	// Empty icon string; beeep falls back to platform defaults.
	err := notify(title, message, "")
	if err != nil {
		logger.Warn("notification: delivery failed: %v", err)
	}
	return err
}

// RepliesReceived announces new messages in a chat thread.
func RepliesReceived(threadTitle string, count int) error {
	if count == 1 {
		return Send("Quarters", "New reply in "+threadTitle)
	}
	return Send("Quarters", fmt.Sprintf("%d new replies in %s", count, threadTitle))
}
