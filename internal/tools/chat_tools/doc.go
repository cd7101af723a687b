// Package chat_tools provides MCP (Model Context Protocol) tools for Google Chat operations.
//
// Available tools:
//   - chat_list_spaces: List spaces the user is a member of
//   - chat_get_space: Get details of a space
//   - chat_list_messages: List messages in a space with optional time range
//   - chat_get_message: Get a single message by resource name
//   - chat_list_members: List members of a space
//   - chat_send_message: Send a text message to a space
//
// All tools take an optional account argument for multi-account support.
// chat_send_message is only registered when the server runs with write
// operations enabled.
package chat_tools
