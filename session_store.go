package wolio

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/wolio-app/wolio-go/storage"
	"github.com/wolio-app/wolio-go/token"
)

func timeNow() time.Time { return time.Now() }

// Storage key suffixes, joined to the configured namespace with a dot.
const (
	keyAuthToken  = "auth.token"
	keyAuthUser   = "auth.user"
	keyOnboarding = "onboarding"
)

// SessionStore is the single source of truth for the client-side session:
// the committed token+user pair, the onboarding record, and the ready flag
// that gates route selection in the host application.
//
// All methods are safe for concurrent use. The in-memory state is
// authoritative for the process lifetime; the durable backend is a
// best-effort mirror consulted only by [SessionStore.Hydrate].
type SessionStore struct {
	config  *Config
	storage storage.Store
	client  AuthClient
	events  *eventDispatcher
	metrics *Metrics
	clock   Clock

	mu         sync.RWMutex
	auth       *Credentials
	onboarding Onboarding
	ready      bool
	hydrated   bool
}

func (s *SessionStore) key(suffix string) string {
	return s.config.Storage.Namespace + "." + suffix
}

// Hydrate loads persisted session state into memory. The three keys (token,
// user, onboarding) are read concurrently and applied independently: a key
// that is absent, unreadable, or malformed contributes its empty default and
// the others still apply. Hydrate ALWAYS finishes with the store ready, so
// the host's routing decision is never blocked by storage trouble.
//
// Only the first call does work; repeated calls return immediately.
func (s *SessionStore) Hydrate(ctx context.Context) {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.hydrated = true
	s.mu.Unlock()

	var (
		wg         sync.WaitGroup
		tok        string
		user       User
		onboarding Onboarding
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if data, ok := s.read(ctx, keyAuthToken); ok {
			tok = string(data)
		}
	}()
	go func() {
		defer wg.Done()
		data, ok := s.read(ctx, keyAuthUser)
		if !ok {
			return
		}
		if err := json.Unmarshal(data, &user); err != nil {
			user = User{}
			s.metrics.Inc(MetricHydrateFieldMalformed)
		}
	}()
	go func() {
		defer wg.Done()
		data, ok := s.read(ctx, keyOnboarding)
		if !ok {
			return
		}
		if err := json.Unmarshal(data, &onboarding); err != nil {
			onboarding = Onboarding{}
			s.metrics.Inc(MetricHydrateFieldMalformed)
		}
	}()
	wg.Wait()

	if tok != "" && s.config.Session.DiscardExpiredOnHydrate &&
		token.Expired(tok, s.clock(), s.config.Session.ExpirySkew) {
		s.metrics.Inc(MetricHydrateTokenExpired)
		s.removeQuiet(ctx, keyAuthToken)
		s.removeQuiet(ctx, keyAuthUser)
		tok = ""
	}

	s.mu.Lock()
	if tok != "" {
		s.auth = &Credentials{Token: tok, User: user}
	}
	s.onboarding = onboarding
	s.ready = true
	s.mu.Unlock()

	s.metrics.Inc(MetricHydrateCompleted)
	s.emit(ctx, Event{
		EventType: "hydrate_completed",
		Success:   true,
	})
}

// Login authenticates against the backend and, on success, commits the
// returned token+user pair atomically and mirrors it to storage. On failure
// the backend error propagates verbatim and any pre-existing session is left
// untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	start := time.Now()
	resp, err := s.client.Login(ctx, email, password)
	s.metrics.Observe(MetricLoginLatency, time.Since(start))

	if err != nil {
		s.metrics.Inc(MetricLoginFailure)
		s.emit(ctx, Event{
			EventType: "login_failed",
			Error:     err.Error(),
		})
		return nil, err
	}

	if err := s.commit(ctx, resp.Token, resp.User, "login"); err != nil {
		s.metrics.Inc(MetricLoginFailure)
		return nil, err
	}

	s.metrics.Inc(MetricLoginSuccess)
	return resp, nil
}

// Signup forwards the signup payload to the backend. It never changes
// session state: the account exists afterwards but nobody is signed in until
// verification completes.
func (s *SessionStore) Signup(ctx context.Context, payload SignupPayload) (*Ack, error) {
	s.metrics.Inc(MetricSignupRequest)

	ack, err := s.client.Signup(ctx, payload)
	if err != nil {
		s.metrics.Inc(MetricSignupFailure)
		s.emit(ctx, Event{
			EventType: "signup_failed",
			Error:     err.Error(),
		})
		return nil, err
	}
	return ack, nil
}

// Verify submits the email+OTP pair and returns the backend response without
// committing it. The flow may require a profile-completion step first;
// [SessionStore.SetAuthAfterVerify] commits once the caller decides to.
func (s *SessionStore) Verify(ctx context.Context, email, otp string) (*AuthResponse, error) {
	s.metrics.Inc(MetricVerifyRequest)

	resp, err := s.client.Verify(ctx, email, otp)
	if err != nil {
		s.metrics.Inc(MetricVerifyFailure)
		s.emit(ctx, Event{
			EventType: "verify_failed",
			Error:     err.Error(),
		})
		return nil, err
	}
	return resp, nil
}

// SetAuthAfterVerify commits a token+user pair obtained from a prior Verify
// call, with the same atomicity and mirroring as a successful login. No
// network I/O is performed.
func (s *SessionStore) SetAuthAfterVerify(ctx context.Context, tok string, user User) error {
	return s.commit(ctx, tok, user, "verify")
}

// Logout ends the session. The backend call is best-effort: a network
// failure is recorded and swallowed, never surfaced, because the user's
// intent to sign out must always win. Memory and storage are cleared
// unconditionally.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.RLock()
	tok := ""
	if s.auth != nil {
		tok = s.auth.Token
	}
	s.mu.RUnlock()

	if tok != "" {
		if err := s.client.Logout(ctx, tok); err != nil {
			s.metrics.Inc(MetricLogoutOffline)
			log.Print("wolio: backend logout failed: ", err)
		}
	}

	s.mu.Lock()
	s.auth = nil
	s.mu.Unlock()

	s.removeQuiet(ctx, keyAuthToken)
	s.removeQuiet(ctx, keyAuthUser)

	s.metrics.Inc(MetricLogout)
	s.emit(ctx, Event{
		EventType: "logout",
		Success:   true,
	})
}

// CompleteOnboarding marks first-run onboarding as done with the chosen role
// and mirrors the record. The completed flag is monotonic and the operation
// is idempotent; repeating it with a different role updates the role only.
func (s *SessionStore) CompleteOnboarding(ctx context.Context, role string) {
	s.mu.Lock()
	s.onboarding.Completed = true
	s.onboarding.Role = role
	record := s.onboarding
	s.mu.Unlock()

	data, err := json.Marshal(record)
	if err == nil {
		s.persist(ctx, keyOnboarding, data)
	}

	s.metrics.Inc(MetricOnboardingCompleted)
	s.emit(ctx, Event{
		EventType: "onboarding_completed",
		Success:   true,
		Metadata:  map[string]string{"role": role},
	})
}

// ForgotPassword asks the backend to start a password reset for email.
// Pure passthrough, no state change.
func (s *SessionStore) ForgotPassword(ctx context.Context, email string) (*Ack, error) {
	s.metrics.Inc(MetricForgotPasswordRequest)
	return s.client.ForgotPassword(ctx, email)
}

// ResetPassword submits the reset OTP and the new password pair. Whether the
// two password fields match is the backend's judgement, not the client's.
// Pure passthrough, no state change.
func (s *SessionStore) ResetPassword(ctx context.Context, email, otp, newPassword, confirmNewPassword string) (*Ack, error) {
	s.metrics.Inc(MetricPasswordResetRequest)

	ack, err := s.client.ResetPassword(ctx, email, otp, newPassword, confirmNewPassword)
	if err != nil {
		s.metrics.Inc(MetricPasswordResetFailure)
		return nil, err
	}
	return ack, nil
}

// IsLoggedIn reports whether a session is committed. Token presence is the
// sole authority: there is no separate logged-in flag to drift out of sync.
func (s *SessionStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth != nil
}

// Ready reports whether Hydrate has completed. Until then the logged-in
// signal is provisional and the host should hold routing.
func (s *SessionStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Token returns the committed bearer token, or "" when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.auth == nil {
		return ""
	}
	return s.auth.Token
}

// CurrentUser returns a copy of the signed-in user, or nil when signed out.
func (s *SessionStore) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.auth == nil {
		return nil
	}
	u := s.auth.User
	return &u
}

// OnboardingCompleted reports whether first-run onboarding has been done on
// this install.
func (s *SessionStore) OnboardingCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboarding.Completed
}

// Snapshot returns a point-in-time copy of the observable session state.
func (s *SessionStore) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		Ready:      s.ready,
		LoggedIn:   s.auth != nil,
		Onboarding: s.onboarding,
	}
	if s.auth != nil {
		snap.Token = s.auth.Token
		u := s.auth.User
		snap.User = &u
	}
	return snap
}

// Metrics exposes the store's in-process metrics for exporters.
func (s *SessionStore) Metrics() *Metrics {
	return s.metrics
}

// MetricsSnapshot returns a point-in-time copy of the in-process metrics.
func (s *SessionStore) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// EventsDropped returns how many events the dispatcher discarded under
// backpressure.
func (s *SessionStore) EventsDropped() uint64 {
	return s.events.Dropped()
}

// Close drains and stops the event dispatcher. The store itself holds no
// other resources.
func (s *SessionStore) Close() {
	s.events.Close()
}

// commit installs a token+user pair as the session, atomically with respect
// to every reader, then mirrors both keys. A pair missing either half is
// rejected before any state changes.
func (s *SessionStore) commit(ctx context.Context, tok string, user User, flow string) error {
	if tok == "" || user.IsZero() {
		return ErrPartialAuthResponse
	}

	s.mu.Lock()
	s.auth = &Credentials{Token: tok, User: user}
	s.mu.Unlock()

	s.persist(ctx, keyAuthToken, []byte(tok))
	if data, err := json.Marshal(user); err == nil {
		s.persist(ctx, keyAuthUser, data)
	}

	s.metrics.Inc(MetricAuthCommitted)
	s.emit(ctx, Event{
		EventType: "auth_committed",
		UserID:    user.ID,
		Success:   true,
		Metadata:  map[string]string{"flow": flow},
	})
	return nil
}

// read fetches one storage key. Absence is normal and silent; transport
// failures are counted and logged. Either way the caller proceeds with the
// empty default.
func (s *SessionStore) read(ctx context.Context, suffix string) ([]byte, bool) {
	data, err := s.storage.Get(ctx, s.key(suffix))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.metrics.Inc(MetricStorageReadFailure)
			log.Print("wolio: storage read failed: ", err)
		}
		return nil, false
	}
	return data, true
}

// persist mirrors one value to storage. Failures are swallowed: counted,
// logged, surfaced as an event, never returned. The write is detached from
// the caller's cancellation so a short-lived request context cannot strand
// the mirror.
func (s *SessionStore) persist(ctx context.Context, suffix string, value []byte) {
	wctx := context.WithoutCancel(ctx)
	if s.config.Storage.WriteTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(wctx, s.config.Storage.WriteTimeout)
		defer cancel()
	}

	if err := s.storage.Set(wctx, s.key(suffix), value); err != nil {
		s.metrics.Inc(MetricStorageWriteFailure)
		log.Print("wolio: storage write failed: ", err)
		s.emit(ctx, Event{
			EventType: "storage_write_failed",
			Error:     err.Error(),
			Metadata:  map[string]string{"key": suffix},
		})
	}
}

func (s *SessionStore) removeQuiet(ctx context.Context, suffix string) {
	wctx := context.WithoutCancel(ctx)
	if s.config.Storage.WriteTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(wctx, s.config.Storage.WriteTimeout)
		defer cancel()
	}

	if err := s.storage.Remove(wctx, s.key(suffix)); err != nil {
		s.metrics.Inc(MetricStorageWriteFailure)
		log.Print("wolio: storage remove failed: ", err)
	}
}

// emit stamps the event with the current time and derived flags, then hands
// it to the dispatcher.
func (s *SessionStore) emit(ctx context.Context, event Event) {
	if s.events == nil {
		return
	}

	s.mu.RLock()
	event.Ready = s.ready
	event.LoggedIn = s.auth != nil
	s.mu.RUnlock()

	event.Timestamp = s.clock()
	s.events.Emit(ctx, event)
}
