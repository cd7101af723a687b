package gmail_tools

import (
	"context"
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/gworkspace/internal/gmail"
	"github.com/mcptools/gworkspace/internal/google"
	"github.com/mcptools/gworkspace/internal/server"
)

// getGmailClient returns the cached Gmail client for the account, creating
// and caching one when a token is available. Without a token it returns an
// error carrying the authorization instructions.
func getGmailClient(ctx context.Context, account string, sc *server.ServerContext) (*gmail.Client, error) {
	if client := sc.GmailClientForAccount(account); client != nil {
		return client, nil
	}

	if !gmail.HasTokenForAccount(account) {
		return nil, fmt.Errorf("%s", google.GetAuthenticationErrorMessage(account))
	}

	client, err := gmail.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
	}
	sc.SetGmailClientForAccount(account, client)
	return client, nil
}

// RegisterGmailTools registers all Gmail-related tools with the MCP server.
// Mutating tools (send, reply, forward, mark read) are skipped in read-only
// mode; compose stays available since it never transmits anything.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterMessageTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}

	if err := RegisterEmailTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register email tools: %w", err)
	}

	if err := RegisterAttachmentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register attachment tools: %w", err)
	}

	return nil
}
