package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Error is the normalized shape every non-2xx backend response collapses
// into: a message fit for the page plus the status code for routing
// decisions (401 -> login redirect, 404 -> not-found page).
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

// StatusOf returns the backend status code carried by err, or 0.
func StatusOf(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}

func IsNotFound(err error) bool     { return StatusOf(err) == http.StatusNotFound }
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

// TokenSource supplies the bearer credential for one session. It is read on
// every call, never cached, so a token swapped mid-session takes effect on
// the next request.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Client talks to the remote books API. It owns no timeout of its own;
// callers bound requests through ctx.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) Get(ctx context.Context, path string, out any, creds TokenSource) error {
	return c.do(ctx, http.MethodGet, path, nil, out, creds)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, creds TokenSource) error {
	return c.do(ctx, http.MethodPost, path, body, out, creds)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, creds TokenSource) error {
	return c.do(ctx, http.MethodPut, path, body, out, creds)
}

func (c *Client) Delete(ctx context.Context, path string, out any, creds TokenSource) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, creds)
}

// do is the single helper behind all four verbs: JSON in, JSON out,
// optional bearer header, non-2xx normalized to *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any, creds TokenSource) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if creds != nil {
		if tok, ok := creds.Token(ctx); ok && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unavailable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalize(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalize prefers the body's message field, falls back to the status
// text, and never lets a garbage body escape as a parse error.
func normalize(status int, raw []byte) *Error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return &Error{Message: "An error occurred", Status: status}
	}
	if body.Message == "" {
		return &Error{Message: "Error: " + http.StatusText(status), Status: status}
	}
	return &Error{Message: body.Message, Status: status}
}
