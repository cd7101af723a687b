package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/mcptools/gworkspace/internal/logging"
)

// MasterSource is the backend capability the recurrence projector depends on:
// a broad, non-expanded fetch of events matching an optional free-text query.
// *Client implements it; tests use an in-memory fake.
type MasterSource interface {
	FetchMasterEvents(ctx context.Context, calendarID, query string) ([]MasterEvent, error)
}

// AnchorSpec is the normalized template derived from one master event:
// the first occurrence's start and the fixed duration applied to every
// occurrence.
type AnchorSpec struct {
	DTStart  time.Time
	Duration time.Duration
	AllDay   bool
}

// ProjectedOccurrence is one concrete instance of a recurring master event.
// Constructed fresh per projection run and never mutated afterwards.
type ProjectedOccurrence struct {
	EventID         string
	Summary         string
	OccurrenceStart time.Time
	OccurrenceEnd   time.Time
}

// Projector expands recurring master events into concrete occurrences within
// a closed time window. It holds no state across calls; every run operates on
// its own backend snapshot, so concurrent calls need no coordination.
type Projector struct {
	source MasterSource
	logger *slog.Logger
}

// NewProjector creates a Projector over the given master-event source.
// A nil logger falls back to slog.Default().
func NewProjector(source MasterSource, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{
		source: source,
		logger: logger,
	}
}

// ProjectRecurringEvents computes every occurrence of the calendar's
// recurring events whose start falls inside [timeMin, timeMax], both bounds
// inclusive. Events that cannot be interpreted are skipped with a diagnostic;
// only a failed backend fetch is returned as an error.
func (p *Projector) ProjectRecurringEvents(ctx context.Context, calendarID, query string, timeMin, timeMax time.Time) ([]ProjectedOccurrence, error) {
	masters, err := p.source.FetchMasterEvents(ctx, calendarID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch master events: %w", err)
	}

	var occurrences []ProjectedOccurrence
	for _, ev := range masters {
		if len(ev.Recurrence) == 0 {
			p.logger.Debug("skipping event without recurrence rules",
				"event_id", ev.ID,
				"summary", ev.Summary)
			continue
		}

		evOccurrences, err := p.projectEvent(ev, timeMin, timeMax)
		if err != nil {
			p.logger.Warn("skipping unprojectable event",
				"event_id", ev.ID,
				"summary", ev.Summary,
				logging.Err(err))
			continue
		}
		occurrences = append(occurrences, evOccurrences...)
	}

	// Stable sort keeps discovery order for equal starts
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].OccurrenceStart.Before(occurrences[j].OccurrenceStart)
	})

	return occurrences, nil
}

// projectEvent expands a single master event into its occurrences within the
// closed window.
func (p *Projector) projectEvent(ev MasterEvent, timeMin, timeMax time.Time) ([]ProjectedOccurrence, error) {
	anchor, err := interpretAnchor(ev, timeMin.Location())
	if err != nil {
		return nil, err
	}

	ruleStr, err := selectRRule(ev.Recurrence)
	if err != nil {
		return nil, err
	}

	exclusions := p.parseExclusions(ev, anchor)

	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recurrence rule %q: %w", ruleStr, err)
	}
	rule.DTStart(anchor.DTStart)

	set := rrule.Set{}
	set.RRule(rule)

	anchorLoc := anchor.DTStart.Location()
	for _, ex := range exclusions {
		// Exclusions match by instant equality after reconciling to the
		// anchor's location
		set.ExDate(ex.In(anchorLoc))
	}

	starts := set.Between(timeMin.In(anchorLoc), timeMax.In(anchorLoc), true)

	summary := ev.Summary
	if summary == "" {
		summary = "No Summary"
	}

	occurrences := make([]ProjectedOccurrence, 0, len(starts))
	var prev time.Time
	for i, start := range starts {
		start = start.In(anchorLoc)
		if i > 0 && start.Equal(prev) {
			continue
		}
		prev = start

		occurrences = append(occurrences, ProjectedOccurrence{
			EventID:         ev.ID,
			Summary:         summary,
			OccurrenceStart: start,
			OccurrenceEnd:   start.Add(anchor.Duration),
		})
	}

	return occurrences, nil
}

// interpretAnchor derives the anchor start and per-occurrence duration from
// a master event. windowLoc is the location the projection window was
// expressed in; all-day anchors are placed in it so that date comparisons
// against the window behave consistently.
func interpretAnchor(ev MasterEvent, windowLoc *time.Location) (AnchorSpec, error) {
	if ev.Start == nil {
		return AnchorSpec{}, fmt.Errorf("event has no start")
	}

	switch {
	case ev.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
		if err != nil {
			return AnchorSpec{}, fmt.Errorf("invalid start dateTime %q: %w", ev.Start.DateTime, err)
		}

		duration := time.Hour
		if ev.End != nil && ev.End.DateTime != "" {
			if end, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil && !end.Before(start) {
				duration = end.Sub(start)
			}
		}

		return AnchorSpec{DTStart: start, Duration: duration}, nil

	case ev.Start.Date != "":
		start, err := time.ParseInLocation("2006-01-02", ev.Start.Date, windowLoc)
		if err != nil {
			return AnchorSpec{}, fmt.Errorf("invalid start date %q: %w", ev.Start.Date, err)
		}

		duration := 24 * time.Hour
		if ev.End != nil && ev.End.Date != "" {
			if end, err := time.ParseInLocation("2006-01-02", ev.End.Date, windowLoc); err == nil && end.After(start) {
				duration = end.Sub(start)
			}
		}

		return AnchorSpec{DTStart: start, Duration: duration, AllDay: true}, nil

	default:
		return AnchorSpec{}, fmt.Errorf("event start has neither date nor dateTime")
	}
}

// selectRRule picks the recurrence rule line to honor. When an event lists
// several RRULE lines the first one wins; upstream calendar data gives no
// precedence beyond that.
func selectRRule(recurrence []string) (string, error) {
	for _, line := range recurrence {
		if strings.HasPrefix(line, "RRULE:") {
			return strings.TrimPrefix(line, "RRULE:"), nil
		}
	}
	return "", fmt.Errorf("no RRULE line in recurrence set")
}

// parseExclusions collects the exception instants from the event's EXDATE
// lines. Malformed tokens are dropped with a warning; they never fail the
// event.
func (p *Projector) parseExclusions(ev MasterEvent, anchor AnchorSpec) []time.Time {
	anchorLoc := anchor.DTStart.Location()

	var exclusions []time.Time
	for _, line := range ev.Recurrence {
		if !strings.HasPrefix(line, "EXDATE") {
			continue
		}

		header, values, found := strings.Cut(line, ":")
		if !found || values == "" {
			p.logger.Warn("dropping malformed EXDATE line",
				"event_id", ev.ID,
				"line", line)
			continue
		}

		// Parameters follow the property name, semicolon-delimited
		// (e.g. EXDATE;VALUE=DATE;TZID=Europe/Berlin)
		params := make(map[string]string)
		for _, part := range strings.Split(header, ";")[1:] {
			key, value, _ := strings.Cut(part, "=")
			params[strings.ToUpper(key)] = value
		}
		isDate := params["VALUE"] == "DATE"

		for _, token := range strings.Split(values, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}

			ex, err := parseExclusionToken(token, isDate, anchorLoc)
			if err != nil {
				p.logger.Warn("dropping unparseable EXDATE value",
					"event_id", ev.ID,
					"value", token,
					logging.Err(err))
				continue
			}
			exclusions = append(exclusions, ex)
		}
	}

	return exclusions
}

// parseExclusionToken parses one EXDATE value. Whole dates are promoted to
// midnight in the anchor's location; timestamps keep their own offset when
// they carry one and inherit the anchor's location otherwise.
func parseExclusionToken(token string, isDate bool, anchorLoc *time.Location) (time.Time, error) {
	if isDate {
		for _, layout := range []string{"20060102", "2006-01-02"} {
			if t, err := time.ParseInLocation(layout, token, anchorLoc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid EXDATE date value %q", token)
	}

	if t, err := time.Parse("20060102T150405Z", token); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("20060102T150405", token, anchorLoc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, token); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid EXDATE value %q", token)
}
