// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the application and
// small constructors for common attributes, so log lines stay consistent
// and greppable between the background loops and the HTTP layer.
package logging
