package notification

import (
	"errors"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
		icon    any
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
		icon    any
	}{title, message, icon})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{
			name:    "successful notification",
			title:   "Test Title",
			message: "Test Message",
		},
		{
			name:        "notification error",
			title:       "Test Title",
			message:     "Test Message",
			mockErr:     errors.New("notification failed"),
			expectError: true,
		},
		{
			name:    "empty title",
			message: "Message with empty title",
		},
		{
			name:  "empty message",
			title: "Title",
		},
		{
			name:    "unicode content",
			title:   "通知",
			message: "🎉 Notification with emoji",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != tt.title {
				t.Errorf("title = %q, want %q", call.title, tt.title)
			}
			if call.message != tt.message {
				t.Errorf("message = %q, want %q", call.message, tt.message)
			}
		})
	}
}

func TestRepliesReceived(t *testing.T) {
	tests := []struct {
		name            string
		threadTitle     string
		count           int
		expectedMessage string
	}{
		{
			name:            "single reply",
			threadTitle:     "Roadmap review",
			count:           1,
			expectedMessage: "New reply in Roadmap review",
		},
		{
			name:            "multiple replies",
			threadTitle:     "Roadmap review",
			count:           3,
			expectedMessage: "3 new replies in Roadmap review",
		},
		{
			name:            "unicode thread title",
			threadTitle:     "会話-123",
			count:           1,
			expectedMessage: "New reply in 会話-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			if err := RepliesReceived(tt.threadTitle, tt.count); err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}

			call := mock.calls[0]
			if call.title != "Quarters" {
				t.Errorf("title = %q, want Quarters", call.title)
			}
			if call.message != tt.expectedMessage {
				t.Errorf("message = %q, want %q", call.message, tt.expectedMessage)
			}
		})
	}
}
