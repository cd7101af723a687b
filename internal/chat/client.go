package chat

import (
	"context"
	"fmt"
	"time"

	chat "google.golang.org/api/chat/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mcptools/gworkspace/internal/google"
)

// Client wraps the Google Chat service
type Client struct {
	svc     *chat.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccount creates a new Chat client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	// Get HTTP client with OAuth token
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w. Please authenticate with Google through your MCP client", account, err)
	}

	svc, err := chat.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Chat service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Chat client with OAuth2 authentication for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListSpaces lists the chat spaces the authenticated user has access to
func (c *Client) ListSpaces(pageSize int64, filter string) ([]SpaceInfo, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	call := c.svc.Spaces.List().PageSize(pageSize)
	if filter != "" {
		call = call.Filter(filter)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	spaces := make([]SpaceInfo, 0, len(res.Spaces))
	for _, s := range res.Spaces {
		spaces = append(spaces, toSpaceInfo(s))
	}
	return spaces, nil
}

// GetSpace retrieves a specific space (e.g. "spaces/AAAA1234")
func (c *Client) GetSpace(name string) (*SpaceInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("space name is required")
	}

	space, err := c.svc.Spaces.Get(name).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get space %s: %w", name, err)
	}

	info := toSpaceInfo(space)
	return &info, nil
}

// createTime filters use second precision; the Chat API rejects fractional
// seconds in some combinations
const createTimeLayout = "2006-01-02T15:04:05Z"

// buildCreateTimeFilter builds the message list filter for a time range.
// A start without an end covers that whole day, midnight to midnight.
// A zero start means no filter.
func buildCreateTimeFilter(startTime, endTime time.Time) string {
	if startTime.IsZero() {
		return ""
	}

	if endTime.IsZero() {
		dayStart := time.Date(startTime.Year(), startTime.Month(), startTime.Day(),
			0, 0, 0, 0, startTime.Location())
		startTime = dayStart
		endTime = dayStart.Add(24 * time.Hour)
	}

	return fmt.Sprintf("createTime > %q AND createTime < %q",
		startTime.UTC().Format(createTimeLayout),
		endTime.UTC().Format(createTimeLayout))
}

// ListMessages lists messages in a space, newest first, optionally filtered
// by creation time. When detailed is set, sender details are requested too.
func (c *Client) ListMessages(space string, startTime, endTime time.Time, pageSize int64, detailed bool) ([]MessageInfo, error) {
	if space == "" {
		return nil, fmt.Errorf("space is required")
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	call := c.svc.Spaces.Messages.List(space).
		PageSize(pageSize).
		OrderBy("createTime desc")

	if filter := buildCreateTimeFilter(startTime, endTime); filter != "" {
		call = call.Filter(filter)
	}
	if detailed {
		call = call.Fields(googleapi.Field("messages(name,text,createTime,sender(name,displayName,type,domainId),thread)"))
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages in space %s: %w", space, err)
	}

	messages := make([]MessageInfo, 0, len(res.Messages))
	for _, m := range res.Messages {
		messages = append(messages, toMessageInfo(m))
	}
	return messages, nil
}

// GetMessage retrieves a specific message (e.g. "spaces/AAAA1234/messages/BBBB5678")
func (c *Client) GetMessage(name string) (*MessageInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("message name is required")
	}

	msg, err := c.svc.Spaces.Messages.Get(name).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", name, err)
	}

	info := toMessageInfo(msg)
	return &info, nil
}

// SendMessage sends a text message to a space. A non-empty threadKey replies
// to that thread, falling back to a new thread if it doesn't exist.
func (c *Client) SendMessage(space, text, threadKey string) (*MessageInfo, error) {
	if space == "" {
		return nil, fmt.Errorf("space is required")
	}
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}

	msg := &chat.Message{Text: text}

	call := c.svc.Spaces.Messages.Create(space, msg)
	if threadKey != "" {
		msg.Thread = &chat.Thread{ThreadKey: threadKey}
		call = call.MessageReplyOption("REPLY_MESSAGE_FALLBACK_TO_NEW_THREAD")
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to send message to space %s: %w", space, err)
	}

	info := toMessageInfo(created)
	return &info, nil
}

// ListMembers lists the memberships of a space. When detailed is set, member
// user details are requested too.
func (c *Client) ListMembers(space string, pageSize int64, detailed bool) ([]MemberInfo, error) {
	if space == "" {
		return nil, fmt.Errorf("space is required")
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	call := c.svc.Spaces.Members.List(space).PageSize(pageSize)
	if detailed {
		call = call.Fields(googleapi.Field("memberships(name,member(name,displayName,type,domainId),createTime,role)"))
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list members of space %s: %w", space, err)
	}

	members := make([]MemberInfo, 0, len(res.Memberships))
	for _, m := range res.Memberships {
		members = append(members, toMemberInfo(m))
	}
	return members, nil
}
