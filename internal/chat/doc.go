// Package chat provides a client for interacting with the Google Chat API.
//
// The client lists and fetches spaces, messages and memberships and sends
// text messages, optionally into an existing thread by thread key. Message
// listing supports a createTime filter: an explicit range, or a single day
// when only a start time is given.
//
// The client supports multi-account authentication using the Google OAuth2
// flow; tokens are cached per account on disk.
package chat
