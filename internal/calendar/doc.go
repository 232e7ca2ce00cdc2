// Package calendar provides a read-only client for the Google Calendar API.
//
// The client lists the events of a single UTC day across every calendar
// the authenticated account can see, handling pagination and de-duplicating
// events that appear in more than one calendar. It also extracts the best
// available Google Meet link from an event (structured conference entry
// first, legacy hangout link as fallback).
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClientForAccount(ctx, "default")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	events, err := client.ListDayEvents(ctx, time.Now().UTC())
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
