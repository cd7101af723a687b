package gmail

import (
	gmail "google.golang.org/api/gmail/v1"
)

// MessageSummary is a flattened view of a Gmail message for listing and
// display. Body holds the plain-text body when the payload carried one.
type MessageSummary struct {
	ID       string
	ThreadID string
	Subject  string
	From     string
	To       string
	Date     string
	Snippet  string
	Body     string
	LabelIDs []string
}

// LabelInfo represents a Gmail label
type LabelInfo struct {
	ID                  string
	Name                string
	Type                string // "system" or "user"
	MessagesTotal       int64
	MessagesUnread      int64
	LabelListVisibility string
}

// ProfileInfo represents the authenticated user's Gmail profile
type ProfileInfo struct {
	EmailAddress  string
	MessagesTotal int64
	ThreadsTotal  int64
	HistoryID     uint64
}

// toMessageSummary flattens a Gmail message into a MessageSummary. The body
// is best-effort; metadata-only fetches simply leave it empty.
func (c *Client) toMessageSummary(msg *gmail.Message) MessageSummary {
	if msg == nil {
		return MessageSummary{}
	}

	summary := MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Subject:  HeaderValue(msg, "Subject"),
		From:     HeaderValue(msg, "From"),
		To:       HeaderValue(msg, "To"),
		Date:     HeaderValue(msg, "Date"),
		Snippet:  msg.Snippet,
		LabelIDs: msg.LabelIds,
	}

	if body, err := c.extractBodyFromMessage(msg, "text"); err == nil {
		summary.Body = body
	}

	return summary
}

// toLabelInfo converts a Gmail label to a LabelInfo
func toLabelInfo(label *gmail.Label) LabelInfo {
	if label == nil {
		return LabelInfo{}
	}

	return LabelInfo{
		ID:                  label.Id,
		Name:                label.Name,
		Type:                label.Type,
		MessagesTotal:       label.MessagesTotal,
		MessagesUnread:      label.MessagesUnread,
		LabelListVisibility: label.LabelListVisibility,
	}
}
