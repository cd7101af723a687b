package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// EventInput represents the input for creating or updating a calendar event
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	TimeZone    string
	AllDay      bool
	Attendees   []string
	Recurrence  []string // RRULE, EXRULE, RDATE, EXDATE
}

// EventSummary represents a simplified calendar event for listing
type EventSummary struct {
	ID          string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Creator     string
	Organizer   string
	Status      string
	Attendees   []AttendeeInfo
	Recurrence  []string
}

// AttendeeInfo represents information about an event attendee
type AttendeeInfo struct {
	Email          string
	DisplayName    string
	ResponseStatus string // "needsAction", "declined", "tentative", "accepted"
	Optional       bool
	Organizer      bool
}

// EventTime is the start or end specification of a master event: either a
// whole date (all-day) or an RFC 3339 timestamp, with an optional timezone
// name. Exactly one of Date and DateTime is set.
type EventTime struct {
	Date     string // "2006-01-02" for all-day events
	DateTime string // RFC 3339 for timed events
	TimeZone string // IANA name, may be empty
}

// MasterEvent is the non-expanded definition of a calendar event as returned
// by the backend, holding the recurrence strings rather than any single
// occurrence. Read-only input to the recurrence projector.
type MasterEvent struct {
	ID         string
	Summary    string
	Start      *EventTime
	End        *EventTime
	Recurrence []string // RRULE/EXDATE lines, verbatim
}

// CalendarInfo represents information about a calendar
type CalendarInfo struct {
	ID          string
	Summary     string
	Description string
	TimeZone    string
	Primary     bool
	AccessRole  string // "owner", "writer", "reader", "freeBusyReader"
}

// DayBusyness summarizes the scheduled load of a single day
type DayBusyness struct {
	Date         string // "2006-01-02"
	EventCount   int
	TotalMinutes int
}

// FreeBusyInfo represents availability information for a calendar
type FreeBusyInfo struct {
	Calendar string
	Busy     []TimeRange
	Errors   []string
}

// TimeRange represents a time range
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// toEventSummary converts a Google Calendar event to an EventSummary
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
		Recurrence:  event.Recurrence,
	}

	// Parse start time
	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				summary.Start = t
			}
		} else if event.Start.Date != "" {
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				summary.Start = t
			}
		}
	}

	// Parse end time
	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				summary.End = t
			}
		} else if event.End.Date != "" {
			if t, err := time.Parse("2006-01-02", event.End.Date); err == nil {
				summary.End = t
			}
		}
	}

	// Creator and organizer
	if event.Creator != nil {
		summary.Creator = event.Creator.Email
	}
	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}

	// Attendees
	for _, att := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          att.Email,
			DisplayName:    att.DisplayName,
			ResponseStatus: att.ResponseStatus,
			Optional:       att.Optional,
			Organizer:      att.Organizer,
		})
	}

	return summary
}

// toMasterEvent converts a Google Calendar event into the structural record
// consumed by the recurrence projector. No field interpretation happens here;
// the interpreter decides what is usable.
func toMasterEvent(event *calendar.Event) MasterEvent {
	if event == nil {
		return MasterEvent{}
	}

	master := MasterEvent{
		ID:         event.Id,
		Summary:    event.Summary,
		Recurrence: event.Recurrence,
	}

	if event.Start != nil {
		master.Start = &EventTime{
			Date:     event.Start.Date,
			DateTime: event.Start.DateTime,
			TimeZone: event.Start.TimeZone,
		}
	}
	if event.End != nil {
		master.End = &EventTime{
			Date:     event.End.Date,
			DateTime: event.End.DateTime,
			TimeZone: event.End.TimeZone,
		}
	}

	return master
}

// toCalendarInfo converts a Google Calendar list entry to CalendarInfo
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}

	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}
