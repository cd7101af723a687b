package chat_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/gworkspace/internal/chat"
	"github.com/mcptools/gworkspace/internal/google"
	"github.com/mcptools/gworkspace/internal/server"
	"github.com/mcptools/gworkspace/internal/tools/common"
)

// getChatClient returns the cached Chat client for the account, creating and
// caching one when a token is available. Without a token it returns an error
// carrying the authorization instructions.
func getChatClient(ctx context.Context, account string, sc *server.ServerContext) (*chat.Client, error) {
	if client := sc.ChatClientForAccount(account); client != nil {
		return client, nil
	}

	if !chat.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	client, err := chat.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Chat client for account %s: %w", account, err)
	}
	sc.SetChatClientForAccount(account, client)
	return client, nil
}

// RegisterChatTools registers all Google Chat tools with the MCP server.
// The send tool is skipped in read-only mode.
func RegisterChatTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List spaces tool
	listSpacesTool := mcp.NewTool("chat_list_spaces",
		mcp.WithDescription("List Google Chat spaces the authenticated user is a member of"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of spaces to return (default: 100)"),
		),
		mcp.WithString("filter",
			mcp.Description("Optional filter (e.g., 'spaceType = \"SPACE\"')"),
		),
	)

	s.AddTool(listSpacesTool, common.InstrumentedToolHandlerWithService(
		"chat_list_spaces", "chat", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListSpaces(ctx, request, sc)
		}))

	// Get space tool
	getSpaceTool := mcp.NewTool("chat_get_space",
		mcp.WithDescription("Get details of a Google Chat space"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Space resource name (e.g., 'spaces/AAAA1234')"),
		),
	)

	s.AddTool(getSpaceTool, common.InstrumentedToolHandlerWithService(
		"chat_get_space", "chat", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetSpace(ctx, request, sc)
		}))

	// List messages tool
	listMessagesTool := mcp.NewTool("chat_list_messages",
		mcp.WithDescription("List messages in a Google Chat space, optionally restricted to a time range"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Space resource name (e.g., 'spaces/AAAA1234')"),
		),
		mcp.WithString("startTime",
			mcp.Description("Only return messages created after this time (RFC3339 format)"),
		),
		mcp.WithString("endTime",
			mcp.Description("Only return messages created before this time (RFC3339 format)"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of messages to return (default: 25)"),
		),
		mcp.WithBoolean("detailed",
			mcp.Description("Include sender and thread details for each message (default: false)"),
		),
	)

	s.AddTool(listMessagesTool, common.InstrumentedToolHandlerWithService(
		"chat_list_messages", "chat", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMessages(ctx, request, sc)
		}))

	// Get message tool
	getMessageTool := mcp.NewTool("chat_get_message",
		mcp.WithDescription("Get a single Google Chat message by resource name"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Message resource name (e.g., 'spaces/AAAA1234/messages/BBBB5678')"),
		),
	)

	s.AddTool(getMessageTool, common.InstrumentedToolHandlerWithService(
		"chat_get_message", "chat", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessage(ctx, request, sc)
		}))

	// List members tool
	listMembersTool := mcp.NewTool("chat_list_members",
		mcp.WithDescription("List members of a Google Chat space"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Space resource name (e.g., 'spaces/AAAA1234')"),
		),
		mcp.WithNumber("pageSize",
			mcp.Description("Maximum number of members to return (default: 100)"),
		),
		mcp.WithBoolean("detailed",
			mcp.Description("Include role, state and join time for each member (default: false)"),
		),
	)

	s.AddTool(listMembersTool, common.InstrumentedToolHandlerWithService(
		"chat_list_members", "chat", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMembers(ctx, request, sc)
		}))

	if !readOnly {
		// Send message tool
		sendMessageTool := mcp.NewTool("chat_send_message",
			mcp.WithDescription("Send a text message to a Google Chat space"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("space",
				mcp.Required(),
				mcp.Description("Space resource name (e.g., 'spaces/AAAA1234')"),
			),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Message text to send"),
			),
			mcp.WithString("threadKey",
				mcp.Description("Optional thread key to reply within an existing thread"),
			),
		)

		s.AddTool(sendMessageTool, common.InstrumentedToolHandlerWithService(
			"chat_send_message", "chat", "send", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleSendMessage(ctx, request, sc)
			}))
	}

	return nil
}

// parseOptionalTime parses an RFC3339 time argument, returning the zero time
// when the argument is absent
func parseOptionalTime(args map[string]interface{}, key string) (time.Time, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s format (expected RFC3339): %v", key, err)
	}
	return t, nil
}

func handleListSpaces(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	pageSize := int64(100)
	if pageSizeVal, ok := args["pageSize"].(float64); ok {
		pageSize = int64(pageSizeVal)
	}

	filter := ""
	if filterVal, ok := args["filter"].(string); ok {
		filter = filterVal
	}

	client, err := getChatClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	spaces, err := client.ListSpaces(pageSize, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list spaces: %v", err)), nil
	}

	if len(spaces) == 0 {
		return mcp.NewToolResultText("No spaces found"), nil
	}

	result := fmt.Sprintf("Found %d space(s):\n\n", len(spaces))
	for i, space := range spaces {
		result += fmt.Sprintf("%d. %s\n", i+1, displayNameOrFallback(space.DisplayName, space.SpaceType))
		result += fmt.Sprintf("   Name: %s\n", space.Name)
		result += fmt.Sprintf("   Type: %s\n", space.SpaceType)
		if space.Description != "" {
			result += fmt.Sprintf("   Description: %s\n", space.Description)
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func handleGetSpace(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spaceName, ok := args["space"].(string)
	if !ok || spaceName == "" {
		return mcp.NewToolResultError("space is required"), nil
	}

	client, err := getChatClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	space, err := client.GetSpace(spaceName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get space: %v", err)), nil
	}

	result := fmt.Sprintf("Space: %s\n", displayNameOrFallback(space.DisplayName, space.SpaceType))
	result += fmt.Sprintf("Name: %s\n", space.Name)
	result += fmt.Sprintf("Type: %s\n", space.SpaceType)
	if space.Description != "" {
		result += fmt.Sprintf("Description: %s\n", space.Description)
	}

	return mcp.NewToolResultText(result), nil
}

func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spaceName, ok := args["space"].(string)
	if !ok || spaceName == "" {
		return mcp.NewToolResultError("space is required"), nil
	}

	startTime, err := parseOptionalTime(args, "startTime")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	endTime, err := parseOptionalTime(args, "endTime")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pageSize := int64(25)
	if pageSizeVal, ok := args["pageSize"].(float64); ok {
		pageSize = int64(pageSizeVal)
	}

	detailed := false
	if detailedVal, ok := args["detailed"].(bool); ok {
		detailed = detailedVal
	}

	client, err := getChatClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	messages, err := client.ListMessages(spaceName, startTime, endTime, pageSize, detailed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}

	if len(messages) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No messages found in %s", spaceName)), nil
	}

	result := fmt.Sprintf("Found %d message(s) in %s:\n\n", len(messages), spaceName)
	for i, msg := range messages {
		result += fmt.Sprintf("%d. %s", i+1, formatMessageInfo(&msg, detailed))
	}

	return mcp.NewToolResultText(result), nil
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	client, err := getChatClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg, err := client.GetMessage(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
	}

	return mcp.NewToolResultText(formatMessageInfo(msg, true)), nil
}

func handleListMembers(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spaceName, ok := args["space"].(string)
	if !ok || spaceName == "" {
		return mcp.NewToolResultError("space is required"), nil
	}

	pageSize := int64(100)
	if pageSizeVal, ok := args["pageSize"].(float64); ok {
		pageSize = int64(pageSizeVal)
	}

	detailed := false
	if detailedVal, ok := args["detailed"].(bool); ok {
		detailed = detailedVal
	}

	client, err := getChatClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	members, err := client.ListMembers(spaceName, pageSize, detailed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list members: %v", err)), nil
	}

	if len(members) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No members found in %s", spaceName)), nil
	}

	result := fmt.Sprintf("Found %d member(s) in %s:\n\n", len(members), spaceName)
	for i, member := range members {
		result += fmt.Sprintf("%d. %s\n", i+1, displayNameOrFallback(member.Member.DisplayName, member.Member.Name))
		result += fmt.Sprintf("   Name: %s\n", member.Name)
		if detailed {
			result += fmt.Sprintf("   Role: %s\n", member.Role)
			result += fmt.Sprintf("   State: %s\n", member.State)
			if member.CreateTime != "" {
				result += fmt.Sprintf("   Joined: %s\n", member.CreateTime)
			}
		}
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func handleSendMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	spaceName, ok := args["space"].(string)
	if !ok || spaceName == "" {
		return mcp.NewToolResultError("space is required"), nil
	}

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	threadKey := ""
	if threadKeyVal, ok := args["threadKey"].(string); ok {
		threadKey = threadKeyVal
	}

	client, err := getChatClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg, err := client.SendMessage(spaceName, text, threadKey)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send message: %v", err)), nil
	}

	result := fmt.Sprintf("Message sent successfully!\nName: %s\nSpace: %s", msg.Name, spaceName)
	if msg.Thread != "" {
		result += fmt.Sprintf("\nThread: %s", msg.Thread)
	}

	return mcp.NewToolResultText(result), nil
}

// formatMessageInfo renders a chat message as an indented text block. The
// detailed flag adds sender and thread information.
func formatMessageInfo(msg *chat.MessageInfo, detailed bool) string {
	text := msg.Text
	if text == "" {
		text = "(no text)"
	}

	result := fmt.Sprintf("%s\n", text)
	result += fmt.Sprintf("   Name: %s\n", msg.Name)
	if msg.CreateTime != "" {
		result += fmt.Sprintf("   Created: %s\n", msg.CreateTime)
	}
	if detailed {
		if msg.Sender.DisplayName != "" || msg.Sender.Name != "" {
			result += fmt.Sprintf("   Sender: %s", displayNameOrFallback(msg.Sender.DisplayName, msg.Sender.Name))
			if msg.Sender.Type != "" {
				result += fmt.Sprintf(" (%s)", msg.Sender.Type)
			}
			result += "\n"
		}
		if msg.Thread != "" {
			result += fmt.Sprintf("   Thread: %s\n", msg.Thread)
		}
	}
	result += "\n"

	return result
}

// displayNameOrFallback returns the display name when set, otherwise the
// fallback identifier
func displayNameOrFallback(displayName, fallback string) string {
	if displayName != "" {
		return displayName
	}
	if fallback != "" {
		return fallback
	}
	return "(unnamed)"
}
