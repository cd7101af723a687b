package calendar_tools

import (
	"strings"
	"testing"
	"time"

	"github.com/mcptools/gworkspace/internal/calendar"
)

func TestParseAttendeesArg(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected []string
	}{
		{
			name:     "no attendees",
			args:     map[string]interface{}{},
			expected: nil,
		},
		{
			name: "empty string",
			args: map[string]interface{}{
				"attendees": "",
			},
			expected: nil,
		},
		{
			name: "single attendee",
			args: map[string]interface{}{
				"attendees": "user@example.com",
			},
			expected: []string{"user@example.com"},
		},
		{
			name: "multiple attendees with spaces",
			args: map[string]interface{}{
				"attendees": "a@example.com, b@example.com , c@example.com",
			},
			expected: []string{"a@example.com", "b@example.com", "c@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseAttendeesArg(tt.args)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseAttendeesArg() length = %d, want %d", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("parseAttendeesArg()[%d] = %s, want %s", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		expectErr string
	}{
		{
			name: "valid range",
			args: map[string]interface{}{
				"timeMin": "2025-01-01T00:00:00Z",
				"timeMax": "2025-01-31T23:59:59Z",
			},
		},
		{
			name: "missing timeMin",
			args: map[string]interface{}{
				"timeMax": "2025-01-31T23:59:59Z",
			},
			expectErr: "timeMin is required",
		},
		{
			name: "missing timeMax",
			args: map[string]interface{}{
				"timeMin": "2025-01-01T00:00:00Z",
			},
			expectErr: "timeMax is required",
		},
		{
			name: "invalid timeMin",
			args: map[string]interface{}{
				"timeMin": "January 1st",
				"timeMax": "2025-01-31T23:59:59Z",
			},
			expectErr: "invalid timeMin",
		},
		{
			name: "invalid timeMax",
			args: map[string]interface{}{
				"timeMin": "2025-01-01T00:00:00Z",
				"timeMax": "2025-01-31",
			},
			expectErr: "invalid timeMax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeMin, timeMax, err := parseTimeRange(tt.args)
			if tt.expectErr != "" {
				if err == nil {
					t.Fatalf("parseTimeRange() expected error containing %q, got nil", tt.expectErr)
				}
				if !strings.Contains(err.Error(), tt.expectErr) {
					t.Errorf("parseTimeRange() error = %v, want containing %q", err, tt.expectErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimeRange() unexpected error: %v", err)
			}
			if !timeMax.After(timeMin) {
				t.Error("timeMax should be after timeMin")
			}
		})
	}
}

func TestProjectionWindowExpansion(t *testing.T) {
	// The tool expands YYYY-MM-DD dates to full-day UTC bounds.
	timeMin, err := time.Parse(time.RFC3339, "2024-01-01"+"T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	timeMax, err := time.Parse(time.RFC3339, "2024-01-31"+"T23:59:59Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if timeMin.Hour() != 0 || timeMin.Minute() != 0 || timeMin.Second() != 0 {
		t.Errorf("window start should be midnight, got %v", timeMin)
	}
	if timeMax.Hour() != 23 || timeMax.Minute() != 59 || timeMax.Second() != 59 {
		t.Errorf("window end should be end of day, got %v", timeMax)
	}

	// Malformed dates must be rejected before any API call.
	if _, err := time.Parse(time.RFC3339, "01/15/2024"+"T00:00:00Z"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestFormatEventSummary(t *testing.T) {
	event := &calendar.EventSummary{
		ID:      "evt1",
		Summary: "Weekly sync",
		Start:   time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC),
		Status:  "confirmed",
		Attendees: []calendar.AttendeeInfo{
			{Email: "a@example.com", ResponseStatus: "accepted", Optional: true},
		},
		Recurrence: []string{"RRULE:FREQ=WEEKLY"},
	}

	result := formatEventSummary(event)

	for _, want := range []string{
		"Weekly sync",
		"evt1",
		"2025-01-15T14:00:00Z",
		"2025-01-15T15:00:00Z",
		"RRULE:FREQ=WEEKLY",
		"a@example.com (accepted)",
		"[optional]",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("formatEventSummary() missing %q in:\n%s", want, result)
		}
	}
}
