// Package events implements the session lifecycle event model and sinks.
//
// # Components
//
//   - [Sink]: interface for event consumers (channel, JSON writer, no-op).
//   - [Event]: structured session record with timestamp, type, user, ready
//     and logged-in flags, metadata.
//
// # Architecture boundaries
//
// This package owns the event model and sink delivery. It does NOT decide
// which events to emit; that responsibility belongs to the SessionStore.
//
// # What this package must NOT do
//
//   - Filter or suppress events based on session logic.
//   - Import wolio or any sibling package.
//   - Perform network I/O beyond what a caller-supplied Sink does.
package events
