package meet

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	meet "google.golang.org/api/meet/v2"
	"google.golang.org/api/option"

	"github.com/teemow/classwatch/internal/google"
)

// Client wraps the Google Meet service
type Client struct {
	svc     *meet.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccountWithProvider creates a new Meet client with OAuth2
// authentication for a specific account. The OAuth token is retrieved from
// the provided token provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := meet.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Meet service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClientForAccount creates a new Meet client with OAuth2 authentication
// for a specific account, using the default file-based token provider.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// ListConferenceRecords lists conference records matching the given filter
// expression, e.g. MeetingCodeFilter("abc-defg-hij").
//
// Accessing conference records usually requires a Workspace account.
func (c *Client) ListConferenceRecords(ctx context.Context, filter string) ([]ConferenceRecordSummary, error) {
	var records []ConferenceRecordSummary

	call := c.svc.ConferenceRecords.List()
	if filter != "" {
		call = call.Filter(filter)
	}

	err := call.Pages(ctx, func(resp *meet.ListConferenceRecordsResponse) error {
		for _, record := range resp.ConferenceRecords {
			records = append(records, toConferenceRecordSummary(record))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list conference records: %w", err)
	}

	return records, nil
}

// ListParticipants lists all participants of a conference record.
// conferenceRecordName is formatted "conferenceRecords/{id}".
func (c *Client) ListParticipants(ctx context.Context, conferenceRecordName string) ([]Participant, error) {
	var participants []Participant

	call := c.svc.ConferenceRecords.Participants.List(conferenceRecordName)

	err := call.Pages(ctx, func(resp *meet.ListParticipantsResponse) error {
		for _, p := range resp.Participants {
			participants = append(participants, toParticipant(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for %s: %w", conferenceRecordName, err)
	}

	return participants, nil
}

// ListRecordings lists all recordings for a conference record.
func (c *Client) ListRecordings(ctx context.Context, conferenceRecordName string) ([]Recording, error) {
	var recordings []Recording

	call := c.svc.ConferenceRecords.Recordings.List(conferenceRecordName)

	err := call.Pages(ctx, func(resp *meet.ListRecordingsResponse) error {
		for _, rec := range resp.Recordings {
			recordings = append(recordings, toRecording(rec))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings for %s: %w", conferenceRecordName, err)
	}

	return recordings, nil
}
