// Package client is a Go client for the platform API. It mirrors what the
// admin panel does around sessions: the token is persisted through a
// TokenStore, restored and validated against /auth/me on startup, and
// attached per request rather than through a shared default header.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/VisaPro-Team/be-visa-platform/utils"
)

const tokenHeader = "X-Auth-Token"

// Profile is the authenticated admin as reported by /auth/me.
type Profile struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the resolved authentication state. Callers must wait for the
// restore gate (Session blocks until Restore has run once) before trusting
// it.
type Session struct {
	Authenticated bool
	AdminID       int64
	Role          string
	Profile       *Profile
}

// APIError is a non-2xx response from the server, decoded from its error
// envelope.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to the platform API and tracks one admin session.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	mu         sync.Mutex
	token      string
	session    Session
	generation uint64

	restoreOnce sync.Once
	restored    chan struct{}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the API at baseURL. Tokens are persisted through
// store; pass a MemoryTokenStore for throwaway sessions.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 15 * time.Second},
		store:    store,
		restored: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restore loads a persisted token and validates it against /auth/me. It is
// the startup gate: Session blocks until the first Restore completes. A
// token that fails validation is cleared from the store. If Logout runs
// concurrently, the in-flight restore result is discarded so a stale
// profile can never overwrite the signed-out state.
func (c *Client) Restore(ctx context.Context) (Session, error) {
	defer c.restoreOnce.Do(func() { close(c.restored) })

	token, err := c.store.Load()
	if err != nil {
		return c.snapshot(), err
	}
	if token == "" {
		return c.snapshot(), nil
	}

	c.mu.Lock()
	c.token = token
	gen := c.generation
	c.mu.Unlock()

	profile, err := c.fetchProfile(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// Logout won the race; ignore whatever the restore found.
		return c.session, nil
	}
	if err != nil {
		c.token = ""
		c.session = Session{}
		if clearErr := c.store.Clear(); clearErr != nil {
			return c.session, clearErr
		}
		if _, ok := err.(*APIError); ok {
			// Invalid or expired token resolves to signed-out, not failure.
			return c.session, nil
		}
		return c.session, err
	}
	c.session = Session{
		Authenticated: true,
		AdminID:       profile.ID,
		Role:          profile.Role,
		Profile:       profile,
	}
	return c.session, nil
}

// Session returns the current session, blocking until the startup restore
// has resolved.
func (c *Client) Session(ctx context.Context) (Session, error) {
	select {
	case <-c.restored:
		return c.snapshot(), nil
	case <-ctx.Done():
		return Session{}, ctx.Err()
	}
}

// Login authenticates with email and password, persists the token, and
// derives identity from the token claims without a server round trip.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return Session{}, err
	}

	claims, err := utils.DecodeTokenUnverified(resp.Token)
	if err != nil {
		return Session{}, fmt.Errorf("decode token: %w", err)
	}
	if err := c.store.Save(resp.Token); err != nil {
		return Session{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = resp.Token
	c.session = Session{
		Authenticated: true,
		AdminID:       claims.AdminID,
		Role:          claims.Role,
	}
	c.restoreOnce.Do(func() { close(c.restored) })
	return c.session, nil
}

// Logout clears the session locally. The server keeps no session state, so
// no request is made.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.generation++
	c.token = ""
	c.session = Session{}
	c.mu.Unlock()
	return c.store.Clear()
}

// Me fetches the authenticated admin's profile.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	return c.fetchProfile(ctx, c.currentToken())
}

func (c *Client) fetchProfile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Get performs an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, c.currentToken(), nil, out)
}

// Post performs an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, c.currentToken(), body, out)
}

// Put performs an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, c.currentToken(), body, out)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, c.currentToken(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			apiErr.Code = envelope.Error
			apiErr.Message = envelope.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
