package gmail

import (
	"fmt"
	"regexp"
	"strings"
)

// Gmail's date operators expect YYYY/MM/DD
var searchDateRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)

// buildSearchQuery combines a free-text query with validated after/before
// date filters into a single Gmail query string
func buildSearchQuery(query, after, before string) (string, error) {
	parts := []string{}
	if query != "" {
		parts = append(parts, query)
	}

	if after != "" {
		if !searchDateRe.MatchString(after) {
			return "", fmt.Errorf("invalid after date %q: must be YYYY/MM/DD", after)
		}
		parts = append(parts, "after:"+after)
	}
	if before != "" {
		if !searchDateRe.MatchString(before) {
			return "", fmt.Errorf("invalid before date %q: must be YYYY/MM/DD", before)
		}
		parts = append(parts, "before:"+before)
	}

	return strings.Join(parts, " "), nil
}

// SearchMessages searches for messages matching the query, optionally
// restricted to a date range. after and before must be YYYY/MM/DD when given.
func (c *Client) SearchMessages(query string, maxResults int64, after, before string) ([]MessageSummary, error) {
	fullQuery, err := buildSearchQuery(query, after, before)
	if err != nil {
		return nil, err
	}
	return c.QueryMessages(fullQuery, maxResults)
}

// QueryMessages lists messages matching a raw Gmail query and resolves each
// match to its headers and snippet. A single page of results is fetched.
func (c *Client) QueryMessages(query string, maxResults int64) ([]MessageSummary, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	req := c.svc.Messages.List("me").MaxResults(maxResults)
	if query != "" {
		req = req.Q(query)
	}

	res, err := req.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	summaries := make([]MessageSummary, 0, len(res.Messages))
	for _, m := range res.Messages {
		msg, err := c.svc.Messages.Get("me", m.Id).
			Format("metadata").
			MetadataHeaders("Subject", "From", "To", "Date").
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get message %s: %w", m.Id, err)
		}
		summaries = append(summaries, c.toMessageSummary(msg))
	}

	return summaries, nil
}
