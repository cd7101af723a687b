// Package gmail provides a client for interacting with the Gmail API.
//
// The client covers searching and reading messages (with plain-text body
// extraction and an HTML fallback), composing and sending RFC 2822 emails
// with RFC 2047 subject encoding and the user's signature appended, replying
// and forwarding with proper threading headers, labels, threads, attachments
// and the user's profile.
//
// Search queries accept Gmail's query syntax; SearchMessages additionally
// validates after/before filters as YYYY/MM/DD before appending them to the
// query.
//
// The client supports multi-account authentication using the Google OAuth2
// flow; tokens are cached per account on disk (~/.cache/gworkspace/).
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := gmail.NewClientForAccount(ctx, "work")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Search messages within a date range
//	msgs, err := client.SearchMessages("is:unread", 20, "2024/01/01", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Send an email
//	msg := &gmail.EmailMessage{
//	    To:      []string{"recipient@example.com"},
//	    Subject: "Hello",
//	    Body:    "This is a test email",
//	    IsHTML:  false,
//	}
//	msgID, err := client.SendEmail(msg)
//	if err != nil {
//	    log.Fatal(err)
//	}
package gmail
