package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/gworkspace/internal/calendar"
	"github.com/mcptools/gworkspace/internal/chat"
	"github.com/mcptools/gworkspace/internal/gmail"
	"github.com/mcptools/gworkspace/internal/server"
)

// Resources are served for the default account. Multi-account access goes
// through the tools, which accept an explicit account argument.
const resourceAccount = "default"

// RegisterWorkspaceResources registers MCP resources exposing Gmail,
// Calendar and Chat entities by URI
func RegisterWorkspaceResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Static user profile resource
	profileResource := mcp.NewResource(
		"user://profile",
		"Current User Profile",
		mcp.WithResourceDescription("Information about the currently authenticated Google account"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(profileResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUserProfile(ctx, request, sc)
	})

	// Templated resources for individual entities
	messageTemplate := mcp.NewResourceTemplate(
		"gmail://messages/{id}",
		"Gmail Message",
		mcp.WithTemplateDescription("A Gmail message by ID, with headers and snippet"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(messageTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleGmailMessage(ctx, request, sc)
	})

	threadTemplate := mcp.NewResourceTemplate(
		"gmail://threads/{id}",
		"Gmail Thread",
		mcp.WithTemplateDescription("A Gmail thread by ID, listing its messages"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(threadTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleGmailThread(ctx, request, sc)
	})

	eventTemplate := mcp.NewResourceTemplate(
		"calendar://events/{id}",
		"Calendar Event",
		mcp.WithTemplateDescription("A primary-calendar event by ID"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(eventTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCalendarEvent(ctx, request, sc)
	})

	spaceTemplate := mcp.NewResourceTemplate(
		"chat://spaces/{space}",
		"Chat Space",
		mcp.WithTemplateDescription("A Google Chat space by ID"),
		mcp.WithTemplateMIMEType("application/json"),
	)

	s.AddResourceTemplate(spaceTemplate, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleChatSpace(ctx, request, sc)
	})

	return nil
}

// extractResourceID returns the path element following the prefix in a
// resource URI
func extractResourceID(uri, prefix string) (string, error) {
	id := strings.TrimPrefix(uri, prefix)
	if id == uri || id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("invalid resource URI: %s", uri)
	}
	return id, nil
}

func getGmailClient(ctx context.Context, sc *server.ServerContext) (*gmail.Client, error) {
	if client := sc.GmailClientForAccount(resourceAccount); client != nil {
		return client, nil
	}
	if !gmail.HasTokenForAccount(resourceAccount) {
		return nil, fmt.Errorf("no Gmail credentials for account %s", resourceAccount)
	}
	client, err := gmail.NewClientForAccount(ctx, resourceAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}
	sc.SetGmailClientForAccount(resourceAccount, client)
	return client, nil
}

func getCalendarClient(ctx context.Context, sc *server.ServerContext) (*calendar.Client, error) {
	if client := sc.CalendarClientForAccount(resourceAccount); client != nil {
		return client, nil
	}
	if !calendar.HasTokenForAccount(resourceAccount) {
		return nil, fmt.Errorf("no Calendar credentials for account %s", resourceAccount)
	}
	client, err := calendar.NewClientForAccount(ctx, resourceAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client: %w", err)
	}
	sc.SetCalendarClientForAccount(resourceAccount, client)
	return client, nil
}

func getChatClient(ctx context.Context, sc *server.ServerContext) (*chat.Client, error) {
	if client := sc.ChatClientForAccount(resourceAccount); client != nil {
		return client, nil
	}
	if !chat.HasTokenForAccount(resourceAccount) {
		return nil, fmt.Errorf("no Chat credentials for account %s", resourceAccount)
	}
	client, err := chat.NewClientForAccount(ctx, resourceAccount)
	if err != nil {
		return nil, fmt.Errorf("failed to create Chat client: %w", err)
	}
	sc.SetChatClientForAccount(resourceAccount, client)
	return client, nil
}

func jsonContents(uri string, data interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

func handleUserProfile(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, err := getGmailClient(ctx, sc)
	if err != nil {
		return nil, err
	}

	profile, err := client.GetProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"account":       resourceAccount,
		"email":         profile.EmailAddress,
		"messagesTotal": profile.MessagesTotal,
		"threadsTotal":  profile.ThreadsTotal,
		"historyId":     profile.HistoryID,
	})
}

func handleGmailMessage(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	messageID, err := extractResourceID(request.Params.URI, "gmail://messages/")
	if err != nil {
		return nil, err
	}

	client, err := getGmailClient(ctx, sc)
	if err != nil {
		return nil, err
	}

	summary, err := client.GetMessageSummary(messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"id":       summary.ID,
		"threadId": summary.ThreadID,
		"subject":  summary.Subject,
		"from":     summary.From,
		"to":       summary.To,
		"date":     summary.Date,
		"snippet":  summary.Snippet,
		"labelIds": summary.LabelIDs,
	})
}

func handleGmailThread(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	threadID, err := extractResourceID(request.Params.URI, "gmail://threads/")
	if err != nil {
		return nil, err
	}

	client, err := getGmailClient(ctx, sc)
	if err != nil {
		return nil, err
	}

	thread, err := client.GetThread(threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	messages := make([]map[string]interface{}, 0, len(thread.Messages))
	for _, msg := range thread.Messages {
		messages = append(messages, map[string]interface{}{
			"id":      msg.Id,
			"subject": gmail.HeaderValue(msg, "Subject"),
			"from":    gmail.HeaderValue(msg, "From"),
			"date":    gmail.HeaderValue(msg, "Date"),
			"snippet": msg.Snippet,
		})
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"id":       thread.Id,
		"messages": messages,
	})
}

func handleCalendarEvent(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	eventID, err := extractResourceID(request.Params.URI, "calendar://events/")
	if err != nil {
		return nil, err
	}

	client, err := getCalendarClient(ctx, sc)
	if err != nil {
		return nil, err
	}

	event, err := client.GetEvent("primary", eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"id":          event.ID,
		"summary":     event.Summary,
		"description": event.Description,
		"location":    event.Location,
		"start":       event.Start.Format(time.RFC3339),
		"end":         event.End.Format(time.RFC3339),
		"status":      event.Status,
		"organizer":   event.Organizer,
		"recurrence":  event.Recurrence,
	})
}

func handleChatSpace(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	spaceID, err := extractResourceID(request.Params.URI, "chat://spaces/")
	if err != nil {
		return nil, err
	}

	client, err := getChatClient(ctx, sc)
	if err != nil {
		return nil, err
	}

	space, err := client.GetSpace("spaces/" + spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get space: %w", err)
	}

	return jsonContents(request.Params.URI, map[string]interface{}{
		"name":        space.Name,
		"displayName": space.DisplayName,
		"spaceType":   space.SpaceType,
		"description": space.Description,
	})
}
