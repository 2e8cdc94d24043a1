package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Content-service wrappers. These screens render whatever the backend sends,
// so the wrappers return the raw JSON document and leave interpretation to
// the presentation layer.

// Dashboard fetches the signed-in user's dashboard document.
func (c *Client) Dashboard(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/dashboard", token, nil)
}

// Library fetches the user's library document.
func (c *Client) Library(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/library", token, nil)
}

// Explore fetches the public explore feed.
func (c *Client) Explore(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/explore", token, nil)
}

// Profile fetches the user's profile document.
func (c *Client) Profile(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/profile", token, nil)
}

// UpdateProfile replaces the mutable profile fields and returns the updated
// document.
func (c *Client) UpdateProfile(ctx context.Context, token string, fields map[string]any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, "/profile", token, fields)
}
