// Package google provides shared OAuth2 authentication for the Google
// Calendar and Meet clients: the application's OAuth config and scopes,
// file-based token storage with an environment override, and an HTTP
// client factory used by the API wrappers.
package google
