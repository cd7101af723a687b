package resources

import (
	"strings"
	"testing"
)

func TestExtractResourceID(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		prefix    string
		expected  string
		expectErr bool
	}{
		{
			name:     "gmail message",
			uri:      "gmail://messages/msg123",
			prefix:   "gmail://messages/",
			expected: "msg123",
		},
		{
			name:     "calendar event",
			uri:      "calendar://events/evt456",
			prefix:   "calendar://events/",
			expected: "evt456",
		},
		{
			name:      "missing id",
			uri:       "gmail://messages/",
			prefix:    "gmail://messages/",
			expectErr: true,
		},
		{
			name:      "wrong prefix",
			uri:       "calendar://events/evt456",
			prefix:    "gmail://messages/",
			expectErr: true,
		},
		{
			name:      "nested path",
			uri:       "gmail://messages/a/b",
			prefix:    "gmail://messages/",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := extractResourceID(tt.uri, tt.prefix)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("extractResourceID(%q, %q) expected error, got %q", tt.uri, tt.prefix, id)
				}
				if !strings.Contains(err.Error(), "invalid resource URI") {
					t.Errorf("unexpected error message: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractResourceID(%q, %q) unexpected error: %v", tt.uri, tt.prefix, err)
			}
			if id != tt.expected {
				t.Errorf("extractResourceID(%q, %q) = %q, want %q", tt.uri, tt.prefix, id, tt.expected)
			}
		})
	}
}
