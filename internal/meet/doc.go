// Package meet provides a read-only client for the Google Meet API v2.
//
// The client retrieves conference records by meeting-code filter, the
// participants of a conference record, and its recording artifacts. It is
// used by the attendance monitor to decide whether a scheduled session is
// live, who is in the room, and whether recording is underway.
//
// Participant display names are resolved with the precedence
// signed-in user > anonymous user > phone user > "Guest", mirroring how
// Meet itself labels tiles.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := meet.NewClientForAccount(ctx, "default")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	records, err := client.ListConferenceRecords(ctx, `space.meeting_code="abc-defg-hij"`)
//	if err != nil {
//	    log.Fatal(err)
//	}
package meet
