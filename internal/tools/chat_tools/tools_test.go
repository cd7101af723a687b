package chat_tools

import (
	"strings"
	"testing"

	"github.com/mcptools/gworkspace/internal/chat"
)

func TestParseOptionalTime(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		expectErr bool
		wantZero  bool
	}{
		{
			name:     "absent key",
			args:     map[string]interface{}{},
			wantZero: true,
		},
		{
			name: "empty string",
			args: map[string]interface{}{
				"startTime": "",
			},
			wantZero: true,
		},
		{
			name: "valid RFC3339",
			args: map[string]interface{}{
				"startTime": "2025-01-15T10:00:00Z",
			},
		},
		{
			name: "date only",
			args: map[string]interface{}{
				"startTime": "2025-01-15",
			},
			expectErr: true,
		},
		{
			name: "garbage",
			args: map[string]interface{}{
				"startTime": "yesterday",
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseOptionalTime(tt.args, "startTime")
			if tt.expectErr {
				if err == nil {
					t.Fatal("parseOptionalTime() expected error, got nil")
				}
				if !strings.Contains(err.Error(), "startTime") {
					t.Errorf("parseOptionalTime() error should name the argument, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOptionalTime() unexpected error: %v", err)
			}
			if result.IsZero() != tt.wantZero {
				t.Errorf("parseOptionalTime() IsZero = %v, want %v", result.IsZero(), tt.wantZero)
			}
		})
	}
}

func TestFormatMessageInfo(t *testing.T) {
	msg := &chat.MessageInfo{
		Name:       "spaces/AAAA1234/messages/BBBB5678",
		Text:       "Deployment finished",
		CreateTime: "2025-01-15T10:00:00Z",
		Thread:     "spaces/AAAA1234/threads/CCCC9012",
		Sender: chat.SenderInfo{
			Name:        "users/123",
			DisplayName: "Alice",
			Type:        "HUMAN",
		},
	}

	brief := formatMessageInfo(msg, false)
	if !strings.Contains(brief, "Deployment finished") {
		t.Errorf("brief output missing text:\n%s", brief)
	}
	if strings.Contains(brief, "Sender:") {
		t.Errorf("brief output should omit sender:\n%s", brief)
	}

	detailed := formatMessageInfo(msg, true)
	for _, want := range []string{
		"Deployment finished",
		"spaces/AAAA1234/messages/BBBB5678",
		"Sender: Alice (HUMAN)",
		"Thread: spaces/AAAA1234/threads/CCCC9012",
	} {
		if !strings.Contains(detailed, want) {
			t.Errorf("detailed output missing %q in:\n%s", want, detailed)
		}
	}
}

func TestFormatMessageInfo_EmptyText(t *testing.T) {
	msg := &chat.MessageInfo{
		Name: "spaces/AAAA1234/messages/BBBB5678",
	}

	result := formatMessageInfo(msg, false)
	if !strings.Contains(result, "(no text)") {
		t.Errorf("expected placeholder for empty text, got:\n%s", result)
	}
}

func TestDisplayNameOrFallback(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		fallback    string
		expected    string
	}{
		{"display name wins", "Team Space", "spaces/AAAA", "Team Space"},
		{"fallback used", "", "spaces/AAAA", "spaces/AAAA"},
		{"both empty", "", "", "(unnamed)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayNameOrFallback(tt.displayName, tt.fallback); got != tt.expected {
				t.Errorf("displayNameOrFallback(%q, %q) = %q, want %q", tt.displayName, tt.fallback, got, tt.expected)
			}
		})
	}
}
