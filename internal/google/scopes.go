package google

// DefaultOAuthScopes are the Google OAuth scopes required for monitoring.
//
// The scopes provide access to:
//   - Google Calendar: read-only
//   - Google Meet: conference records, participants (read-only)
//   - Google Meet: recording artifacts (read-only)
var DefaultOAuthScopes = []string{
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/meetings.space.readonly",
	"https://www.googleapis.com/auth/meetings.conference.media.readonly",
}
