// Package session defines the session model served by the HTTP API and
// the mutex-guarded store shared by the sync and monitor loops.
package session
