package cmd

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		name     string
		toolName string
		expected string
	}{
		{
			name:     "google auth tool",
			toolName: "google_get_auth_url",
			expected: "Google Auth Tools",
		},
		{
			name:     "gmail tool",
			toolName: "gmail_search_emails",
			expected: "Gmail Tools",
		},
		{
			name:     "calendar tool",
			toolName: "calendar_project_recurring_events",
			expected: "Google Calendar Tools",
		},
		{
			name:     "chat tool",
			toolName: "chat_list_spaces",
			expected: "Google Chat Tools",
		},
		{
			name:     "unknown prefix",
			toolName: "foo_bar",
			expected: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getCategoryFromToolName(tt.toolName); got != tt.expected {
				t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.toolName, got, tt.expected)
			}
		})
	}
}

func TestGroupToolsByCategory(t *testing.T) {
	tools := []mcp.Tool{
		{Name: "gmail_search_emails"},
		{Name: "gmail_send_email"},
		{Name: "calendar_search_events"},
		{Name: "chat_list_spaces"},
	}

	grouped := groupToolsByCategory(tools)

	if len(grouped["Gmail Tools"]) != 2 {
		t.Errorf("Gmail Tools count = %d, want 2", len(grouped["Gmail Tools"]))
	}
	if len(grouped["Google Calendar Tools"]) != 1 {
		t.Errorf("Google Calendar Tools count = %d, want 1", len(grouped["Google Calendar Tools"]))
	}
	if len(grouped["Google Chat Tools"]) != 1 {
		t.Errorf("Google Chat Tools count = %d, want 1", len(grouped["Google Chat Tools"]))
	}
}

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.Tool{
		Name:        "calendar_search_events",
		Description: "Search for events",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"timeMin": map[string]interface{}{
					"type":        "string",
					"description": "Start of the range",
				},
				"query": map[string]interface{}{
					"type": "string",
				},
			},
			Required: []string{"timeMin"},
		},
	}

	markdown := generateToolMarkdown(tool)

	for _, want := range []string{
		"### calendar_search_events",
		"Search for events",
		"`timeMin` (required): Start of the range",
		"`query` (optional):",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("generateToolMarkdown() missing %q in:\n%s", want, markdown)
		}
	}
}
