package internaldefs

import (
	wolio "github.com/wolio-app/wolio-go"
)

// CounterDef defines a public type used by wolio exporters.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   wolio.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by wolio exporters.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   wolio.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session store exporters.
var CounterDefs = []CounterDef{
	{ID: wolio.MetricHydrateCompleted, Name: "wolio_session_hydrate_completed_total", Help: "Completed hydrations."},
	{ID: wolio.MetricHydrateFieldMalformed, Name: "wolio_session_hydrate_field_malformed_total", Help: "Persisted fields discarded as malformed during hydrate."},
	{ID: wolio.MetricHydrateTokenExpired, Name: "wolio_session_hydrate_token_expired_total", Help: "Persisted tokens discarded as expired during hydrate."},
	{ID: wolio.MetricStorageReadFailure, Name: "wolio_session_storage_read_failure_total", Help: "Storage reads that failed with a transport error."},
	{ID: wolio.MetricStorageWriteFailure, Name: "wolio_session_storage_write_failure_total", Help: "Best-effort storage writes that failed."},
	{ID: wolio.MetricLoginSuccess, Name: "wolio_session_login_success_total", Help: "Successful login attempts."},
	{ID: wolio.MetricLoginFailure, Name: "wolio_session_login_failure_total", Help: "Failed login attempts."},
	{ID: wolio.MetricSignupRequest, Name: "wolio_session_signup_request_total", Help: "Signup requests."},
	{ID: wolio.MetricSignupFailure, Name: "wolio_session_signup_failure_total", Help: "Failed signup requests."},
	{ID: wolio.MetricVerifyRequest, Name: "wolio_session_verify_request_total", Help: "Email verification requests."},
	{ID: wolio.MetricVerifyFailure, Name: "wolio_session_verify_failure_total", Help: "Failed email verifications."},
	{ID: wolio.MetricAuthCommitted, Name: "wolio_session_auth_committed_total", Help: "Committed token+user pairs."},
	{ID: wolio.MetricLogout, Name: "wolio_session_logout_total", Help: "Logout operations."},
	{ID: wolio.MetricLogoutOffline, Name: "wolio_session_logout_offline_total", Help: "Logouts whose backend call failed and was swallowed."},
	{ID: wolio.MetricOnboardingCompleted, Name: "wolio_session_onboarding_completed_total", Help: "Onboarding completion operations."},
	{ID: wolio.MetricForgotPasswordRequest, Name: "wolio_session_forgot_password_request_total", Help: "Forgot-password requests."},
	{ID: wolio.MetricPasswordResetRequest, Name: "wolio_session_password_reset_request_total", Help: "Password reset submissions."},
	{ID: wolio.MetricPasswordResetFailure, Name: "wolio_session_password_reset_failure_total", Help: "Failed password reset submissions."},
}

// HistogramDefs is an exported constant or variable used by the session store exporters.
var HistogramDefs = []HistogramDef{
	{ID: wolio.MetricLoginLatency, Name: "wolio_session_login_latency_seconds", Help: "Login latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session store exporters.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session store exporters.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
