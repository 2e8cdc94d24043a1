package wolio

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/wolio-app/wolio-go/internal/events"
)

// User is the loosely typed profile record describing the signed-in
// identity. The backend owns the schema; fields the SDK does not model are
// preserved byte-for-byte in Extra so that persisting and re-hydrating a
// user never loses information.
type User struct {
	ID    string
	Name  string
	Email string

	// Extra holds every profile field the backend sent that is not one of
	// the typed fields above, keyed by its JSON name.
	Extra map[string]json.RawMessage
}

// IsZero reports whether the user carries no identity information at all.
func (u User) IsZero() bool {
	return u.ID == "" && u.Name == "" && u.Email == "" && len(u.Extra) == 0
}

// MarshalJSON folds the typed fields and Extra back into a single flat
// object. Typed fields win on key collision.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(u.Extra)+3)
	for k, v := range u.Extra {
		out[k] = v
	}
	for k, v := range map[string]string{"id": u.ID, "name": u.Name, "email": u.Email} {
		if v == "" {
			continue
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out[k] = encoded
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat profile object into the typed fields and Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User{}
	for key, value := range raw {
		switch key {
		case "id":
			if err := json.Unmarshal(value, &u.ID); err != nil {
				return err
			}
		case "name":
			if err := json.Unmarshal(value, &u.Name); err != nil {
				return err
			}
		case "email":
			if err := json.Unmarshal(value, &u.Email); err != nil {
				return err
			}
		default:
			if u.Extra == nil {
				u.Extra = make(map[string]json.RawMessage, len(raw))
			}
			u.Extra[key] = value
		}
	}
	return nil
}

// Credentials is the committed token+user pair. Token and user live and die
// together: the store never holds one without the other, which makes the
// "token present, user absent" state unrepresentable.
type Credentials struct {
	Token string
	User  User
}

// Onboarding records whether the first-run onboarding flow has been
// completed on this install, and the role chosen at completion time.
// Completed is monotonic: normal operation never resets it to false.
type Onboarding struct {
	Completed bool   `json:"completed"`
	Role      string `json:"role,omitempty"`
}

// AuthResponse is the backend's answer to login and verify operations:
// a bearer token, the signed-in user, and any extra payload fields the
// backend attached (returned verbatim for the caller's navigation logic).
type AuthResponse struct {
	Token string
	User  User
	Extra map[string]json.RawMessage
}

// SignupPayload is the raw signup form content. The SDK forwards it without
// interpretation; field requirements belong to the backend.
type SignupPayload map[string]any

// Ack is the backend's acknowledgement for operations that return no
// session material (signup, forgot-password, reset-password).
type Ack struct {
	Message string
}

// AuthClient is the contract the remote Wolio backend is consumed through.
// Package api provides the HTTP implementation; tests substitute fakes.
//
// Every method propagates backend errors verbatim. Non-2xx responses are
// expected to surface as *api.Error values carrying status code and message.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Signup(ctx context.Context, payload SignupPayload) (*Ack, error)
	Verify(ctx context.Context, email, otp string) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) (*Ack, error)
	ResetPassword(ctx context.Context, email, otp, newPassword, confirmNewPassword string) (*Ack, error)
}

// SessionSnapshot is a point-in-time copy of the observable session state,
// consumed by the host's route-selection layer.
type SessionSnapshot struct {
	Ready      bool
	LoggedIn   bool
	Token      string
	User       *User
	Onboarding Onboarding
}

// Event is a structured session lifecycle event emitted by the store's
// dispatcher. The host's navigation layer subscribes via a [ChannelSink]
// to observe ready and logged-in flips.
type Event = events.Event

// EventSink receives [Event] values from the store's event dispatcher.
type EventSink = events.Sink

// NoOpSink is an [EventSink] that silently discards all events.
type NoOpSink = events.NoOpSink

// ChannelSink is a buffered channel-based [EventSink].
type ChannelSink = events.ChannelSink

// JSONWriterSink is an [EventSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = events.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return events.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return events.NewJSONWriterSink(w)
}

// Clock abstracts time for expiry checks; overridden in tests.
type Clock func() time.Time
