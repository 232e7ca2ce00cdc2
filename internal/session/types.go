package session

import (
	"fmt"
	"time"
)

// Status describes the live state of a session.
type Status string

const (
	// StatusIdle means no live conference activity is known.
	StatusIdle Status = "IDLE"
	// StatusActive means at least one participant is currently present.
	StatusActive Status = "ACTIVE"
	// StatusUpcoming means a conference record exists but nobody has
	// joined yet and the session starts within the monitor lead window.
	StatusUpcoming Status = "UPCOMING"
)

// Attendee is an invitee from the calendar event.
type Attendee struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Response string `json:"response"`
}

// Participant is a live conference participant. Email carries the matched
// roster identifier when the display name could be resolved, else empty.
type Participant struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"isActive"`
}

// Session is one scheduled meeting for the current day. A skeleton session
// has empty Participants, IsRecording false and status IDLE; the attendance
// monitor fills in the live fields.
type Session struct {
	ID           string        `json:"id"`
	Summary      string        `json:"summary"`
	MeetingLink  string        `json:"meetingLink"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	Attendees    []Attendee    `json:"attendees"`
	Participants []Participant `json:"participants"`
	IsRecording  bool          `json:"isRecording"`
	Status       Status        `json:"status"`
}

// Clone returns a deep copy of the session. Workers enrich their own copy
// so no two goroutines ever share participant slices.
func (s Session) Clone() Session {
	out := s
	if s.Attendees != nil {
		out.Attendees = make([]Attendee, len(s.Attendees))
		copy(out.Attendees, s.Attendees)
	}
	if s.Participants != nil {
		out.Participants = make([]Participant, len(s.Participants))
		copy(out.Participants, s.Participants)
	}
	return out
}

// CloneAll deep-copies a session list.
func CloneAll(list []Session) []Session {
	if list == nil {
		return nil
	}
	out := make([]Session, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// HourLabel formats a session start time as the "HH:00" label used by the
// active-timeframe configuration, in the time's own offset.
func HourLabel(t time.Time) string {
	return fmt.Sprintf("%02d:00", t.Hour())
}
