// Package calendar_tools provides MCP (Model Context Protocol) tools for Google Calendar operations.
//
// This package exposes Google Calendar functionality through a standardized MCP interface,
// allowing AI assistants to manage calendars and events, check availability, analyze
// per-day busyness, and project occurrences of recurring events within a date window.
//
// The tools support multi-account authentication. Mutating tools (create, update,
// delete) are only registered when the server runs with write operations enabled.
package calendar_tools
