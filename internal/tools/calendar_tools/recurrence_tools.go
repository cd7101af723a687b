package calendar_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mcptools/gworkspace/internal/calendar"
	"github.com/mcptools/gworkspace/internal/google"
	"github.com/mcptools/gworkspace/internal/server"
	"github.com/mcptools/gworkspace/internal/tools/common"
)

// RegisterRecurrenceTools registers recurrence projection tools with the MCP server
func RegisterRecurrenceTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	projectTool := mcp.NewTool("calendar_project_recurring_events",
		mcp.WithDescription("Project occurrences of recurring events within a date window by expanding their recurrence rules locally"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (use 'primary' for primary calendar)"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Start of the projection window (YYYY-MM-DD, expanded to 00:00:00 UTC)"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("End of the projection window (YYYY-MM-DD, expanded to 23:59:59 UTC)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional text query to filter master recurring events"),
		),
	)

	s.AddTool(projectTool, common.InstrumentedToolHandlerWithService(
		"calendar_project_recurring_events", "calendar", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleProjectRecurringEvents(ctx, request, sc)
		}))

	return nil
}

func handleProjectRecurringEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := common.GetAccountFromArgs(ctx, args)

	calendarID := "primary"
	if calIDVal, ok := args["calendarId"].(string); ok && calIDVal != "" {
		calendarID = calIDVal
	}

	startDate, ok := args["start_date"].(string)
	if !ok || startDate == "" {
		return mcp.NewToolResultError("start_date is required"), nil
	}
	timeMin, err := time.Parse(time.RFC3339, startDate+"T00:00:00Z")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid start_date format (expected YYYY-MM-DD): %v", err)), nil
	}

	endDate, ok := args["end_date"].(string)
	if !ok || endDate == "" {
		return mcp.NewToolResultError("end_date is required"), nil
	}
	timeMax, err := time.Parse(time.RFC3339, endDate+"T23:59:59Z")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid end_date format (expected YYYY-MM-DD): %v", err)), nil
	}

	if timeMax.Before(timeMin) {
		return mcp.NewToolResultError("end_date must not be before start_date"), nil
	}

	query := ""
	if queryVal, ok := args["query"].(string); ok {
		query = queryVal
	}

	projector := sc.ProjectorForAccount(account)
	if projector == nil {
		if !calendar.HasTokenForAccount(account) {
			return mcp.NewToolResultError(google.GetAuthenticationErrorMessage(account)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create Calendar client for account %s", account)), nil
	}

	// A failed master fetch is reported as an error, never as an empty result.
	occurrences, err := projector.ProjectRecurringEvents(ctx, calendarID, query, timeMin, timeMax)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to project recurring events: %v", err)), nil
	}

	if len(occurrences) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No occurrences of recurring events found in %s between %s and %s", calendarID, startDate, endDate)), nil
	}

	result := fmt.Sprintf("Projected %d occurrence(s) between %s and %s:\n\n", len(occurrences), startDate, endDate)
	for i, occ := range occurrences {
		result += fmt.Sprintf("%d. %s\n", i+1, occ.Summary)
		result += fmt.Sprintf("   Event ID: %s\n", occ.EventID)
		result += fmt.Sprintf("   Start: %s\n", occ.OccurrenceStart.Format(time.RFC3339))
		result += fmt.Sprintf("   End: %s\n", occ.OccurrenceEnd.Format(time.RFC3339))
		result += "\n"
	}

	return mcp.NewToolResultText(result), nil
}
