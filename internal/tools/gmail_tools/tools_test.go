package gmail_tools

import (
	"strings"
	"testing"

	"github.com/mcptools/gworkspace/internal/gmail"
)

func TestFormatMessageSummary(t *testing.T) {
	msg := &gmail.MessageSummary{
		ID:       "msg1",
		ThreadID: "thread1",
		Subject:  "Quarterly report",
		From:     "alice@example.com",
		To:       "bob@example.com",
		Date:     "Mon, 13 Jan 2025 09:00:00 +0000",
		Snippet:  "Please find attached",
		LabelIDs: []string{"INBOX", "UNREAD"},
	}

	result := formatMessageSummary(msg)

	for _, want := range []string{
		"Quarterly report",
		"Message ID: msg1",
		"Thread ID: thread1",
		"From: alice@example.com",
		"To: bob@example.com",
		"Labels: INBOX, UNREAD",
		"Snippet: Please find attached",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("formatMessageSummary() missing %q in:\n%s", want, result)
		}
	}
}

func TestFormatMessageSummary_NoSubject(t *testing.T) {
	msg := &gmail.MessageSummary{
		ID:       "msg2",
		ThreadID: "thread2",
	}

	result := formatMessageSummary(msg)

	if !strings.Contains(result, "(no subject)") {
		t.Errorf("formatMessageSummary() should use placeholder for empty subject, got:\n%s", result)
	}
	if strings.Contains(result, "From:") {
		t.Errorf("formatMessageSummary() should omit empty From, got:\n%s", result)
	}
}
