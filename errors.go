package wolio

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Validate and Builder.Build when a
	// configuration value is out of range or inconsistent.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrStorageRequired is returned by Builder.Build when no durable storage
	// backend was supplied.
	ErrStorageRequired = errors.New("storage backend is required")

	// ErrAuthClientRequired is returned by Builder.Build when no auth client
	// was supplied.
	ErrAuthClientRequired = errors.New("auth client is required")

	// ErrBuilderConsumed is returned when Build is called twice on the same
	// builder.
	ErrBuilderConsumed = errors.New("builder already consumed")

	// ErrEmptyCredentials is returned when login is attempted with an empty
	// email or password. Format validation beyond non-emptiness belongs to the
	// backend.
	ErrEmptyCredentials = errors.New("empty credentials")

	// ErrPartialAuthResponse is returned when the backend answers an auth
	// operation with a token but no user, or a user but no token. The session
	// is never committed from a partial pair.
	ErrPartialAuthResponse = errors.New("partial auth response from backend")
)
