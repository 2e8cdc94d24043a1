// Package api implements the HTTP client for the Wolio backend: the auth
// endpoints the session store drives plus the thin content-service wrappers
// the rest of the application uses.
//
// The client adds request IDs, device headers from the context, and decodes
// the backend's flat JSON envelopes. Backend failures surface as [*Error]
// values carrying the HTTP status and the backend's message; the session
// store propagates them verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	wolio "github.com/wolio-app/wolio-go"
)

const defaultUserAgent = "wolio-go"

// Error is a non-2xx backend response. Code is the backend's machine error
// code when it sends one.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("wolio api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("wolio api: status %d", e.StatusCode)
}

// Config configures a [Client]. BaseURL is required; the rest have working
// defaults.
type Config struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string

	// HTTPClient overrides the transport. Nil means a client with a 30s
	// timeout.
	HTTPClient *http.Client

	// UserAgent overrides the User-Agent header.
	UserAgent string
}

// Client talks to the Wolio backend. It implements [wolio.AuthClient].
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

// New validates cfg and returns a ready client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api: base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      httpClient,
		userAgent: userAgent,
	}, nil
}

// do sends one JSON request and returns the raw response body. Non-2xx
// statuses become [*Error] with the backend's message when it sent one.
func (c *Client) do(ctx context.Context, method, path, bearer string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if deviceID, ok := wolio.DeviceIDFromContext(ctx); ok {
		req.Header.Set("X-Device-ID", deviceID)
	}
	if version, ok := wolio.AppVersionFromContext(ctx); ok {
		req.Header.Set("X-App-Version", version)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
			Error   string `json:"error"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(payload, &envelope) == nil {
			apiErr.Message = envelope.Message
			if apiErr.Message == "" {
				apiErr.Message = envelope.Error
			}
			apiErr.Code = envelope.Code
		}
		return nil, apiErr
	}

	return payload, nil
}
