package chat

import (
	"testing"
	"time"

	chat "google.golang.org/api/chat/v1"
)

func TestBuildCreateTimeFilter(t *testing.T) {
	tests := []struct {
		name      string
		startTime time.Time
		endTime   time.Time
		want      string
	}{
		{
			name: "no start means no filter",
			want: "",
		},
		{
			name:      "explicit range",
			startTime: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			endTime:   time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC),
			want:      `createTime > "2024-03-01T08:00:00Z" AND createTime < "2024-03-02T18:30:00Z"`,
		},
		{
			name:      "start only covers the whole day",
			startTime: time.Date(2024, 3, 1, 14, 45, 12, 0, time.UTC),
			want:      `createTime > "2024-03-01T00:00:00Z" AND createTime < "2024-03-02T00:00:00Z"`,
		},
		{
			name:      "start at midnight covers that day",
			startTime: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want:      `createTime > "2024-03-01T00:00:00Z" AND createTime < "2024-03-02T00:00:00Z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildCreateTimeFilter(tt.startTime, tt.endTime)
			if got != tt.want {
				t.Errorf("buildCreateTimeFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToSpaceInfo(t *testing.T) {
	info := toSpaceInfo(nil)
	if info.Name != "" {
		t.Errorf("Expected empty info for nil space, got %+v", info)
	}

	space := &chat.Space{
		Name:        "spaces/AAAA1234",
		DisplayName: "Engineering",
		SpaceType:   "SPACE",
		SpaceDetails: &chat.SpaceDetails{
			Description: "Engineering team discussions",
		},
	}

	info = toSpaceInfo(space)
	if info.Name != "spaces/AAAA1234" || info.DisplayName != "Engineering" {
		t.Errorf("toSpaceInfo() = %+v", info)
	}
	if info.Description != "Engineering team discussions" {
		t.Errorf("Description = %s", info.Description)
	}
}

func TestToMessageInfo(t *testing.T) {
	info := toMessageInfo(nil)
	if info.Name != "" {
		t.Errorf("Expected empty info for nil message, got %+v", info)
	}

	msg := &chat.Message{
		Name:       "spaces/AAAA1234/messages/BBBB5678",
		Text:       "Deploy finished",
		CreateTime: "2024-03-01T09:15:00Z",
		Thread: &chat.Thread{
			Name: "spaces/AAAA1234/threads/CCCC9012",
		},
		Sender: &chat.User{
			Name:        "users/123456789",
			DisplayName: "Alice",
			Type:        "HUMAN",
		},
	}

	info = toMessageInfo(msg)
	if info.Text != "Deploy finished" {
		t.Errorf("Text = %s", info.Text)
	}
	if info.Thread != "spaces/AAAA1234/threads/CCCC9012" {
		t.Errorf("Thread = %s", info.Thread)
	}
	if info.Sender.DisplayName != "Alice" || info.Sender.Type != "HUMAN" {
		t.Errorf("Sender = %+v", info.Sender)
	}
}

func TestToMemberInfo(t *testing.T) {
	info := toMemberInfo(nil)
	if info.Name != "" {
		t.Errorf("Expected empty info for nil membership, got %+v", info)
	}

	m := &chat.Membership{
		Name:       "spaces/AAAA1234/members/123456789",
		Role:       "ROLE_MEMBER",
		State:      "JOINED",
		CreateTime: "2023-06-01T00:00:00Z",
		Member: &chat.User{
			Name:        "users/123456789",
			DisplayName: "Alice",
			Type:        "HUMAN",
		},
	}

	info = toMemberInfo(m)
	if info.Role != "ROLE_MEMBER" || info.State != "JOINED" {
		t.Errorf("toMemberInfo() = %+v", info)
	}
	if info.Member.DisplayName != "Alice" {
		t.Errorf("Member = %+v", info.Member)
	}
}

func TestSendMessage_Validation(t *testing.T) {
	c := &Client{}

	if _, err := c.SendMessage("", "hello", ""); err == nil {
		t.Error("SendMessage() should reject an empty space")
	}
	if _, err := c.SendMessage("spaces/AAAA1234", "", ""); err == nil {
		t.Error("SendMessage() should reject empty text")
	}
}

func TestListMessages_Validation(t *testing.T) {
	c := &Client{}

	if _, err := c.ListMessages("", time.Time{}, time.Time{}, 100, false); err == nil {
		t.Error("ListMessages() should reject an empty space")
	}
}

func TestHasTokenForAccount(t *testing.T) {
	result := HasTokenForAccount("test-account")
	_ = result

	result = HasTokenForAccount("")
	if result {
		t.Error("Expected false for empty account name")
	}
}
