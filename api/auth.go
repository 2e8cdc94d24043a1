package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	wolio "github.com/wolio-app/wolio-go"
)

// decodeAuthResponse splits the backend's flat auth envelope into the typed
// token and user plus the untyped remainder. Fields the SDK does not model
// ride along in Extra so navigation hints the backend sends are not lost.
func decodeAuthResponse(payload json.RawMessage) (*wolio.AuthResponse, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("api: decode auth response: %w", err)
	}

	resp := &wolio.AuthResponse{}
	for key, value := range raw {
		switch key {
		case "token":
			if err := json.Unmarshal(value, &resp.Token); err != nil {
				return nil, fmt.Errorf("api: decode token: %w", err)
			}
		case "user":
			if err := json.Unmarshal(value, &resp.User); err != nil {
				return nil, fmt.Errorf("api: decode user: %w", err)
			}
		default:
			if resp.Extra == nil {
				resp.Extra = make(map[string]json.RawMessage, len(raw))
			}
			resp.Extra[key] = value
		}
	}
	return resp, nil
}

func decodeAck(payload json.RawMessage) (*wolio.Ack, error) {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("api: decode ack: %w", err)
	}
	return &wolio.Ack{Message: envelope.Message}, nil
}

// Login exchanges email+password for a token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*wolio.AuthResponse, error) {
	payload, err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthResponse(payload)
}

// Signup forwards the raw signup form. Field requirements belong to the
// backend; the client does not inspect the payload.
func (c *Client) Signup(ctx context.Context, payload wolio.SignupPayload) (*wolio.Ack, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/signup", "", payload)
	if err != nil {
		return nil, err
	}
	return decodeAck(body)
}

// Verify submits the email+OTP pair produced by signup.
func (c *Client) Verify(ctx context.Context, email, otp string) (*wolio.AuthResponse, error) {
	payload, err := c.do(ctx, http.MethodPost, "/auth/verify-email", "", map[string]string{
		"email": email,
		"otp":   otp,
	})
	if err != nil {
		return nil, err
	}
	return decodeAuthResponse(payload)
}

// Logout invalidates the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", token, nil)
	return err
}

// ForgotPassword starts a password reset for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*wolio.Ack, error) {
	payload, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{
		"email": email,
	})
	if err != nil {
		return nil, err
	}
	return decodeAck(payload)
}

// ResetPassword submits the reset OTP with the new password pair. Whether
// the two fields match is the backend's call.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword, confirmNewPassword string) (*wolio.Ack, error) {
	payload, err := c.do(ctx, http.MethodPost, "/auth/reset-password", "", map[string]string{
		"email":                email,
		"otp":                  otp,
		"new_password":         newPassword,
		"confirm_new_password": confirmNewPassword,
	})
	if err != nil {
		return nil, err
	}
	return decodeAck(payload)
}

var _ wolio.AuthClient = (*Client)(nil)
