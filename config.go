package wolio

import (
	"fmt"
	"time"
)

// StorageConfig controls how session state maps onto the durable key-value
// backend.
type StorageConfig struct {
	// Namespace prefixes every key written by the store. Two stores with
	// different namespaces sharing one backend never collide.
	Namespace string

	// WriteTimeout bounds each best-effort mirror write. Zero means the
	// write inherits the caller's context deadline unchanged.
	WriteTimeout time.Duration
}

// SessionConfig controls session interpretation rules.
type SessionConfig struct {
	// DiscardExpiredOnHydrate drops a persisted bearer token during Hydrate
	// when its JWT expiry claim is already in the past. Off by default: a
	// stale token is normally kept and rejected by the backend on first use.
	DiscardExpiredOnHydrate bool

	// ExpirySkew widens the expiry check by the given duration so a token
	// about to expire is treated as expired. Only consulted when
	// DiscardExpiredOnHydrate is set.
	ExpirySkew time.Duration
}

// EventsConfig controls the session event dispatcher.
type EventsConfig struct {
	// Enabled turns event dispatch on. When false no dispatcher goroutine is
	// started and sinks are never invoked.
	Enabled bool

	// BufferSize is the capacity of the dispatch queue.
	BufferSize int

	// DropIfFull makes emission non-blocking: when the queue is full the
	// event is counted as dropped instead of stalling the store operation.
	// When false, emission blocks until the dispatcher drains the queue.
	DropIfFull bool
}

// MetricsConfig controls in-process metrics collection.
type MetricsConfig struct {
	// Enabled turns counter collection on.
	Enabled bool

	// EnableLatencyHistograms additionally records operation latency
	// distributions for the network-bound operations.
	EnableLatencyHistograms bool
}

// Config is the complete configuration for a [SessionStore]. The zero value
// is not usable; start from [DefaultConfig] and override fields.
type Config struct {
	Storage StorageConfig
	Session SessionConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

// DefaultConfig returns the configuration a store uses when none is supplied
// to the builder.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Namespace:    "wolio",
			WriteTimeout: 3 * time.Second,
		},
		Session: SessionConfig{
			DiscardExpiredOnHydrate: false,
			ExpirySkew:              0,
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	clone := *cfg
	return &clone
}

// Validate checks every section for out-of-range or inconsistent values.
// All returned errors wrap [ErrInvalidConfig].
func (c *Config) Validate() error {
	if c.Storage.Namespace == "" {
		return fmt.Errorf("%w: storage namespace must not be empty", ErrInvalidConfig)
	}
	if c.Storage.WriteTimeout < 0 {
		return fmt.Errorf("%w: storage write timeout must not be negative", ErrInvalidConfig)
	}
	if c.Session.ExpirySkew < 0 {
		return fmt.Errorf("%w: session expiry skew must not be negative", ErrInvalidConfig)
	}
	if c.Session.ExpirySkew > 0 && !c.Session.DiscardExpiredOnHydrate {
		return fmt.Errorf("%w: expiry skew set but expired-token discard disabled", ErrInvalidConfig)
	}
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return fmt.Errorf("%w: events buffer size must be positive", ErrInvalidConfig)
	}
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return fmt.Errorf("%w: latency histograms require metrics to be enabled", ErrInvalidConfig)
	}
	return nil
}
