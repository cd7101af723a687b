package gmail

import (
	"encoding/base64"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
)

// GetMessage retrieves a full Gmail message
func (c *Client) GetMessage(messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// GetMessageSummary retrieves a message and flattens it, including the
// plain-text body when one exists
func (c *Client) GetMessageSummary(messageID string) (MessageSummary, error) {
	msg, err := c.GetMessage(messageID)
	if err != nil {
		return MessageSummary{}, err
	}
	return c.toMessageSummary(msg), nil
}

// GetMessageBody extracts text/HTML body from a message
func (c *Client) GetMessageBody(messageID string, format string) (string, error) {
	msg, err := c.GetMessage(messageID)
	if err != nil {
		return "", err
	}
	return c.extractBodyFromMessage(msg, format)
}

// extractBodyFromMessage finds and decodes the requested body part. When the
// text body is requested but absent it falls back to the HTML body, since
// many senders only provide HTML.
func (c *Client) extractBodyFromMessage(msg *gmail.Message, format string) (string, error) {
	if format == "" {
		format = "text"
	}

	var targetMimeType string
	switch format {
	case "text":
		targetMimeType = "text/plain"
	case "html":
		targetMimeType = "text/html"
	default:
		return "", fmt.Errorf("invalid format %s, must be 'text' or 'html'", format)
	}

	body := findBodyData(msg.Payload, targetMimeType)
	if body == "" && format == "text" {
		body = findBodyData(msg.Payload, "text/html")
	}
	if body == "" {
		return "", fmt.Errorf("no readable body found in message (tried text and html)")
	}

	// Decode base64url-encoded body data
	decoded, err := base64.URLEncoding.DecodeString(body)
	if err != nil {
		// Try with standard base64 if URLEncoding fails
		decoded, err = base64.StdEncoding.DecodeString(body)
		if err != nil {
			return "", fmt.Errorf("failed to decode message body: %w", err)
		}
	}

	return string(decoded), nil
}

// findBodyData locates the first part of the given MIME type carrying data
func findBodyData(payload *gmail.MessagePart, targetMimeType string) string {
	if payload == nil {
		return ""
	}

	if payload.MimeType == targetMimeType && payload.Body != nil && payload.Body.Data != "" {
		return payload.Body.Data
	}

	var body string
	walkParts(payload, "", func(part *gmail.MessagePart) {
		if body == "" && part.MimeType == targetMimeType && part.Body != nil && part.Body.Data != "" {
			body = part.Body.Data
		}
	})
	return body
}

// walkParts recursively walks through message parts
func walkParts(part *gmail.MessagePart, messageID string, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, messageID, fn)
	}
}

// HeaderValue extracts a header value from a Gmail message
func HeaderValue(m *gmail.Message, header string) string {
	mpart := m.Payload
	if mpart == nil {
		return ""
	}
	for _, mph := range mpart.Headers {
		if mph.Name == header {
			return mph.Value
		}
	}
	return ""
}
