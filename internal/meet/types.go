package meet

import (
	"fmt"
	"strings"
	"time"

	meet "google.golang.org/api/meet/v2"
)

// ConferenceRecordSummary represents a summary of a conference record
type ConferenceRecordSummary struct {
	// Name is the resource name of the conference record
	// Format: conferenceRecords/{conferenceRecord}
	Name string

	// SpaceID is the resource name of the Meet space
	SpaceID string

	// StartTime is when the conference started
	StartTime time.Time

	// EndTime is when the conference ended. Zero while the conference is
	// still ongoing.
	EndTime time.Time
}

// Ongoing reports whether the conference has no recorded end time.
func (r ConferenceRecordSummary) Ongoing() bool {
	return r.EndTime.IsZero()
}

// Participant represents one participant of a conference record
type Participant struct {
	// Name is the resource name of the participant
	Name string

	// DisplayName is the resolved human-readable name (see
	// resolveDisplayName for precedence)
	DisplayName string

	// SignedIn indicates the participant joined with a Google account
	SignedIn bool

	// EarliestStartTime is when the participant first joined
	EarliestStartTime time.Time

	// LatestEndTime is when the participant last left. Zero while the
	// participant is still in the meeting.
	LatestEndTime time.Time
}

// Present reports whether the participant has no recorded end time,
// i.e. is currently in the meeting.
func (p Participant) Present() bool {
	return p.LatestEndTime.IsZero()
}

// Recording represents a Google Meet recording artifact
type Recording struct {
	// Name is the resource name of the recording
	Name string

	// State is the current state of the recording (e.g. "STARTED",
	// "ENDED", "FILE_GENERATED")
	State string

	// StartTime is when the recording started
	StartTime time.Time

	// EndTime is when the recording ended. Zero while still recording.
	EndTime time.Time
}

// Ongoing reports whether the recording has no recorded end time.
func (r Recording) Ongoing() bool {
	return r.EndTime.IsZero()
}

// MeetingCodeFilter builds the conference-record filter expression for a
// meeting code.
func MeetingCodeFilter(code string) string {
	return fmt.Sprintf("space.meeting_code=%q", code)
}

// MeetingCodeFromLink extracts the meeting code from a Meet link, e.g.
// "https://meet.google.com/abc-defg-hij?authuser=0" -> "abc-defg-hij".
func MeetingCodeFromLink(link string) string {
	code := link
	if i := strings.LastIndex(code, "/"); i >= 0 {
		code = code[i+1:]
	}
	if i := strings.IndexByte(code, '?'); i >= 0 {
		code = code[:i]
	}
	return code
}

// parseTime parses an RFC3339 timestamp from the Meet API, returning the
// zero time for empty or malformed values.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// resolveDisplayName resolves the display name of an API participant.
// Precedence: signed-in user > anonymous user > phone user > "Guest".
func resolveDisplayName(p *meet.Participant) (name string, signedIn bool) {
	switch {
	case p.SignedinUser != nil && p.SignedinUser.DisplayName != "":
		return p.SignedinUser.DisplayName, true
	case p.SignedinUser != nil:
		return "User", true
	case p.AnonymousUser != nil && p.AnonymousUser.DisplayName != "":
		return p.AnonymousUser.DisplayName, false
	case p.PhoneUser != nil && p.PhoneUser.DisplayName != "":
		return p.PhoneUser.DisplayName, false
	}
	return "Guest", false
}

// toConferenceRecordSummary converts a Meet API conference record
func toConferenceRecordSummary(record *meet.ConferenceRecord) ConferenceRecordSummary {
	if record == nil {
		return ConferenceRecordSummary{}
	}
	return ConferenceRecordSummary{
		Name:      record.Name,
		SpaceID:   record.Space,
		StartTime: parseTime(record.StartTime),
		EndTime:   parseTime(record.EndTime),
	}
}

// toParticipant converts a Meet API participant
func toParticipant(p *meet.Participant) Participant {
	if p == nil {
		return Participant{}
	}
	name, signedIn := resolveDisplayName(p)
	return Participant{
		Name:              p.Name,
		DisplayName:       name,
		SignedIn:          signedIn,
		EarliestStartTime: parseTime(p.EarliestStartTime),
		LatestEndTime:     parseTime(p.LatestEndTime),
	}
}

// toRecording converts a Meet API recording
func toRecording(rec *meet.Recording) Recording {
	if rec == nil {
		return Recording{}
	}
	return Recording{
		Name:      rec.Name,
		State:     rec.State,
		StartTime: parseTime(rec.StartTime),
		EndTime:   parseTime(rec.EndTime),
	}
}
