// Package resources registers MCP resources exposing Google Workspace
// entities by URI.
//
// Registered resources:
//   - user://profile: the authenticated user's Gmail profile (static)
//   - gmail://messages/{id}: a Gmail message with headers and snippet
//   - gmail://threads/{id}: a Gmail thread listing its messages
//   - calendar://events/{id}: a primary-calendar event
//   - chat://spaces/{space}: a Google Chat space
//
// Resources are read-only by nature and always registered. They serve the
// default account; multi-account access goes through the tools.
package resources
