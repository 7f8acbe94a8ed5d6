package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// IdempotencyHeader carries the client-generated token that lets the server
// collapse duplicate submissions of the same logical write.
const IdempotencyHeader = "X-Idempotency-Key"

// TokenSource yields the current bearer token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// Error is the normalized failure shape for any request: transport failures
// carry a zero Status, HTTP failures carry the response status and the
// server's error message (or the status text when the body is unparseable).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// Client performs authenticated JSON requests against the gym API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Tokens:  tokens,
	}
}

// Options tweaks a single request.
type Options struct {
	// Headers are merged over the client defaults; the caller wins on conflict.
	Headers map[string]string
}

// Do issues a JSON request. body is marshalled when non-nil; the success
// response is decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...Options) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	for _, o := range opts {
		for k, v := range o.Headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// DoIdempotent is Do with a fresh idempotency key, for creates the UI might
// submit more than once.
func (c *Client) DoIdempotent(ctx context.Context, method, path string, body, out any) error {
	return c.DoWithKey(ctx, method, path, uuid.NewString(), body, out)
}

// DoWithKey attaches an explicit idempotency key. Retries of the same logical
// write must reuse the key; genuinely new submissions must not.
func (c *Client) DoWithKey(ctx context.Context, method, path, key string, body, out any) error {
	return c.Do(ctx, method, path, body, out, Options{
		Headers: map[string]string{IdempotencyHeader: key},
	})
}

// errorMessage extracts the server's error field, falling back to status text.
func errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(resp.StatusCode)
}
