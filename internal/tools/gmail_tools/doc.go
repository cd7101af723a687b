// Package gmail_tools provides MCP (Model Context Protocol) tools for Gmail operations.
//
// This package exposes Gmail functionality through MCP tools that can be called
// by AI agents or other MCP clients:
//
// Message Access:
//   - gmail_search_emails: Search messages by query with date range filters
//   - gmail_query_emails: List messages matching a raw Gmail query
//   - gmail_get_emails: Get details of one or more messages by ID
//   - gmail_list_labels: List labels with message counts
//   - gmail_mark_message_read: Remove the UNREAD label from a message
//
// Email Composition:
//   - gmail_compose_email: Build a message without sending it (dry run)
//   - gmail_send_email: Send an email
//   - gmail_reply_email: Reply within an existing thread
//   - gmail_forward_email: Forward a message to new recipients
//
// Attachment Management:
//   - gmail_list_attachments: List all attachments in a message
//   - gmail_get_attachment: Retrieve attachment content (base64 or text)
//   - gmail_get_message_bodies: Extract text or HTML body from messages
//
// All tools take an optional account argument for multi-account support and
// require an authenticated Gmail client resolved through the server context.
// Mutating tools (send, reply, forward, mark read) are only registered when
// the server runs with write operations enabled; compose is always available
// because it never transmits anything.
//
// Security considerations:
//   - Attachment size is limited to 25MB (MaxAttachmentSize)
//   - Filenames are sanitized to prevent path traversal
//   - OAuth2 tokens are stored per account and refreshed automatically
package gmail_tools
