// Package google provides OAuth2 authentication and token management for Google APIs.
//
// Tokens are cached per account in the user cache directory. The
// TokenProvider interface allows different token sources to be plugged in;
// FileTokenProvider is the implementation used by the server, reading
// file-cached tokens saved by the auth command or the google_save_auth_code
// tool.
package google
