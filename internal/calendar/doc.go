// Package calendar provides a client for interacting with the Google Calendar API.
//
// This package offers functionality for managing calendars and calendar events,
// including creating, reading, updating, and deleting events, checking
// availability, finding open slots and summarizing per-day busyness.
//
// It also contains the recurrence Projector, which fetches non-expanded
// master events (recurring event definitions carrying their RRULE/EXDATE
// lines verbatim) and expands them into concrete occurrences within a closed
// time window. The Projector skips events it cannot interpret and only
// surfaces backend fetch failures to the caller.
//
// The client supports multi-account authentication using the Google OAuth2
// flow and can manage events across multiple Google accounts.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	projector := calendar.NewProjector(client, nil)
//	occs, err := projector.ProjectRecurringEvents(ctx, "primary", "",
//	    time.Now(), time.Now().AddDate(0, 1, 0))
package calendar
