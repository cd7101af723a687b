package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/gworkspace/internal/gmail"
	"github.com/mcptools/gworkspace/internal/server"
	"github.com/mcptools/gworkspace/internal/tools/batch"
	"github.com/mcptools/gworkspace/internal/tools/common"
)

// RegisterMessageTools registers message search and retrieval tools with the MCP server
func RegisterMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Search emails tool (query plus date filters)
	searchEmailsTool := mcp.NewTool("gmail_search_emails",
		mcp.WithDescription("Search Gmail messages by query with optional date range filters"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g., 'from:user@example.com', 'is:unread')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
		mcp.WithString("after",
			mcp.Description("Only return messages after this date (YYYY/MM/DD)"),
		),
		mcp.WithString("before",
			mcp.Description("Only return messages before this date (YYYY/MM/DD)"),
		),
	)

	s.AddTool(searchEmailsTool, common.InstrumentedToolHandlerWithService(
		"gmail_search_emails", "gmail", "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchEmails(ctx, request, sc)
		}))

	// Query emails tool (raw Gmail query)
	queryEmailsTool := mcp.NewTool("gmail_query_emails",
		mcp.WithDescription("List Gmail messages matching a raw Gmail query string"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("query",
			mcp.Description("Raw Gmail query (e.g., 'in:inbox is:unread'). Empty lists recent messages."),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(queryEmailsTool, common.InstrumentedToolHandlerWithService(
		"gmail_query_emails", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryEmails(ctx, request, sc)
		}))

	// Get emails tool (single or batch)
	getEmailsTool := mcp.NewTool("gmail_get_emails",
		mcp.WithDescription("Get details of one or more Gmail messages by ID"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs"),
		),
	)

	s.AddTool(getEmailsTool, common.InstrumentedToolHandlerWithService(
		"gmail_get_emails", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEmails(ctx, request, sc)
		}))

	// List labels tool
	listLabelsTool := mcp.NewTool("gmail_list_labels",
		mcp.WithDescription("List all Gmail labels with message counts"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
	)

	s.AddTool(listLabelsTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_labels", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListLabels(ctx, request, sc)
		}))

	if !readOnly {
		// Mark message read tool
		markReadTool := mcp.NewTool("gmail_mark_message_read",
			mcp.WithDescription("Mark a Gmail message as read by removing the UNREAD label"),
			mcp.WithString("account",
				mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
			),
			mcp.WithString("messageId",
				mcp.Required(),
				mcp.Description("The ID of the message to mark as read"),
			),
		)

		s.AddTool(markReadTool, common.InstrumentedToolHandlerWithService(
			"gmail_mark_message_read", "gmail", "update", sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleMarkMessageRead(ctx, request, sc)
			}))
	}

	return nil
}

func handleSearchEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}

	maxResults := int64(10)
	if maxResultsVal, ok := args["maxResults"].(float64); ok {
		maxResults = int64(maxResultsVal)
	}

	after := ""
	if afterVal, ok := args["after"].(string); ok {
		after = afterVal
	}

	before := ""
	if beforeVal, ok := args["before"].(string); ok {
		before = beforeVal
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	messages, err := client.SearchMessages(query, maxResults, after, before)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search messages: %v", err)), nil
	}

	if len(messages) == 0 {
		return mcp.NewToolResultText("No messages found"), nil
	}

	result := fmt.Sprintf("Found %d message(s):\n\n", len(messages))
	for i, msg := range messages {
		result += fmt.Sprintf("%d. %s", i+1, formatMessageSummary(&msg))
	}

	return mcp.NewToolResultText(result), nil
}

func handleQueryEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}

	maxResults := int64(10)
	if maxResultsVal, ok := args["maxResults"].(float64); ok {
		maxResults = int64(maxResultsVal)
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	messages, err := client.QueryMessages(query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query messages: %v", err)), nil
	}

	if len(messages) == 0 {
		return mcp.NewToolResultText("No messages found"), nil
	}

	result := fmt.Sprintf("Found %d message(s):\n\n", len(messages))
	for i, msg := range messages {
		result += fmt.Sprintf("%d. %s", i+1, formatMessageSummary(&msg))
	}

	return mcp.NewToolResultText(result), nil
}

func handleGetEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		summary, err := client.GetMessageSummary(messageID)
		if err != nil {
			return "", err
		}
		return formatMessageSummary(&summary), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleListLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	labels, err := client.ListLabels()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list labels: %v", err)), nil
	}

	if len(labels) == 0 {
		return mcp.NewToolResultText("No labels found"), nil
	}

	result := fmt.Sprintf("Found %d label(s):\n\n", len(labels))
	for _, label := range labels {
		result += fmt.Sprintf("%s (%s)\n", label.Name, label.ID)
		result += fmt.Sprintf("  Type: %s, Messages: %d, Unread: %d\n",
			label.Type, label.MessagesTotal, label.MessagesUnread)
	}

	return mcp.NewToolResultText(result), nil
}

func handleMarkMessageRead(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	client, err := getGmailClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.MarkMessageRead(messageID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to mark message as read: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Message %s marked as read", messageID)), nil
}

// formatMessageSummary renders a message summary as an indented text block
func formatMessageSummary(msg *gmail.MessageSummary) string {
	var sb strings.Builder

	subject := msg.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	sb.WriteString(subject + "\n")
	sb.WriteString(fmt.Sprintf("   Message ID: %s\n", msg.ID))
	sb.WriteString(fmt.Sprintf("   Thread ID: %s\n", msg.ThreadID))
	if msg.From != "" {
		sb.WriteString(fmt.Sprintf("   From: %s\n", msg.From))
	}
	if msg.To != "" {
		sb.WriteString(fmt.Sprintf("   To: %s\n", msg.To))
	}
	if msg.Date != "" {
		sb.WriteString(fmt.Sprintf("   Date: %s\n", msg.Date))
	}
	if len(msg.LabelIDs) > 0 {
		sb.WriteString(fmt.Sprintf("   Labels: %s\n", strings.Join(msg.LabelIDs, ", ")))
	}
	if msg.Snippet != "" {
		sb.WriteString(fmt.Sprintf("   Snippet: %s\n", msg.Snippet))
	}
	sb.WriteString("\n")

	return sb.String()
}
