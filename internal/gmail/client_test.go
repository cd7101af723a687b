package gmail

import (
	"strings"
	"testing"

	gmail "google.golang.org/api/gmail/v1"
)

func TestHasTokenForAccount(t *testing.T) {
	// Test that HasTokenForAccount returns a boolean for valid account name
	result := HasTokenForAccount("test-account")
	_ = result

	// Test with empty account name
	result = HasTokenForAccount("")
	if result {
		t.Error("Expected false for empty account name")
	}
}

func TestMarkMessageRead_Validation(t *testing.T) {
	c := &Client{}

	if err := c.MarkMessageRead(""); err == nil {
		t.Error("MarkMessageRead() should reject an empty message ID")
	}
}

func TestToMessageSummary(t *testing.T) {
	c := &Client{}

	summary := c.toMessageSummary(nil)
	if summary.ID != "" {
		t.Errorf("Expected empty summary for nil message, got %+v", summary)
	}

	msg := &gmail.Message{
		Id:       "msg123",
		ThreadId: "thread456",
		Snippet:  "Hi there...",
		LabelIds: []string{"INBOX", "UNREAD"},
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "Subject", Value: "Quarterly review"},
				{Name: "From", Value: "alice@example.com"},
				{Name: "To", Value: "bob@example.com"},
				{Name: "Date", Value: "Mon, 1 Jan 2024 09:00:00 +0000"},
			},
		},
	}

	summary = c.toMessageSummary(msg)
	if summary.ID != "msg123" {
		t.Errorf("ID = %s, want msg123", summary.ID)
	}
	if summary.ThreadID != "thread456" {
		t.Errorf("ThreadID = %s, want thread456", summary.ThreadID)
	}
	if summary.Subject != "Quarterly review" {
		t.Errorf("Subject = %s, want 'Quarterly review'", summary.Subject)
	}
	if summary.From != "alice@example.com" {
		t.Errorf("From = %s, want alice@example.com", summary.From)
	}
	if summary.Snippet != "Hi there..." {
		t.Errorf("Snippet = %s, want 'Hi there...'", summary.Snippet)
	}
	if len(summary.LabelIDs) != 2 {
		t.Errorf("Expected 2 label IDs, got %d", len(summary.LabelIDs))
	}
	// Metadata-only payload has no body parts
	if summary.Body != "" {
		t.Errorf("Expected empty body for metadata payload, got %s", summary.Body)
	}
}

func TestToLabelInfo(t *testing.T) {
	info := toLabelInfo(nil)
	if info.ID != "" {
		t.Errorf("Expected empty info for nil label, got %+v", info)
	}

	label := &gmail.Label{
		Id:             "Label_1",
		Name:           "Receipts",
		Type:           "user",
		MessagesTotal:  42,
		MessagesUnread: 3,
	}

	info = toLabelInfo(label)
	if info.ID != "Label_1" || info.Name != "Receipts" || info.Type != "user" {
		t.Errorf("toLabelInfo() = %+v", info)
	}
	if info.MessagesTotal != 42 || info.MessagesUnread != 3 {
		t.Errorf("toLabelInfo() counts = %+v", info)
	}
}

func TestComposeEmail(t *testing.T) {
	c := &Client{signature: "Best,\nAlice"}

	preview, err := c.ComposeEmail(&EmailMessage{
		To:      []string{"bob@example.com"},
		Cc:      []string{"carol@example.com"},
		Subject: "Lunch plans",
		Body:    "Noon at the usual place?",
	})
	if err != nil {
		t.Fatalf("ComposeEmail() error = %v", err)
	}

	for _, want := range []string{
		"To: bob@example.com",
		"Cc: carol@example.com",
		"Subject: Lunch plans",
		"Content-Type: text/plain",
		"Noon at the usual place?",
		"-- \nBest,\nAlice",
	} {
		if !strings.Contains(preview, want) {
			t.Errorf("ComposeEmail() preview missing %q\nGot: %s", want, preview)
		}
	}
}

func TestComposeEmail_Validation(t *testing.T) {
	c := &Client{}

	tests := []struct {
		name        string
		msg         *EmailMessage
		errContains string
	}{
		{
			name:        "no recipients",
			msg:         &EmailMessage{Subject: "s", Body: "b"},
			errContains: "recipient",
		},
		{
			name:        "no subject",
			msg:         &EmailMessage{To: []string{"a@b.c"}, Body: "b"},
			errContains: "subject",
		},
		{
			name:        "no body",
			msg:         &EmailMessage{To: []string{"a@b.c"}, Subject: "s"},
			errContains: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ComposeEmail(tt.msg)
			if err == nil {
				t.Fatal("ComposeEmail() expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %v, should contain %q", err, tt.errContains)
			}
		})
	}
}
