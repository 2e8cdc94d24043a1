// Package wolio is the Go client SDK for the Wolio learning platform.
//
// Its core is [SessionStore]: the single source of truth for the client-side
// authentication session (bearer token, signed-in user, onboarding status).
// The store bridges in-memory reactive state and a durable local key-value
// store, and exposes the derived signals (ready, logged-in) that a host
// application uses to pick between its authenticated and unauthenticated
// surfaces.
//
// The package is safe for concurrent use: SessionStore methods may be called
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// wolio is the public surface. It exposes [SessionStore], [Builder],
// [Config], and value types (User, Credentials, SessionSnapshot, Event).
// The remote backend is consumed only through the [AuthClient] contract
// (implemented by package api); durable storage only through the
// storage.Store contract.
//
// # What this package must NOT do
//
//   - Validate credentials locally: email/password format checking belongs
//     to the backend.
//   - Surface storage failures to callers: durable writes are best-effort
//     and the in-memory state stays authoritative for the process lifetime.
//   - Perform I/O during construction (Builder is allocation-only until
//     Build; the first I/O is Hydrate).
package wolio
