// Package cmd implements the classwatch command line interface.
//
// The root command defaults to serve, which runs the calendar sync and
// attendance monitoring loops alongside the HTTP API. The auth command
// performs the one-time OAuth flow that stores a Google token for an
// account.
package cmd
