// Package client is a Go consumer of the BandMate API. It keeps the session
// token and the last-known profile in memory, so callers can gate their own
// flows on Authenticated() the way the web client gates protected pages.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/app/service"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/model"
)

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
	user  *model.User
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, req service.RegisterRequest) (*model.User, error) {
	var resp service.AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	c.setSession(resp.Token, resp.User)
	return resp.User, nil
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	req := service.LoginRequest{Email: email, Password: password}
	var resp service.AuthResponse
	if err := c.post(ctx, "/api/auth/login", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	c.setSession(resp.Token, resp.User)
	return resp.User, nil
}

// Me fetches the profile for the stored token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(httpReq)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, responseError(httpResp)
	}
	user := &model.User{}
	if err := json.NewDecoder(httpResp.Body).Decode(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CheckAuth revalidates the stored token against the server, clearing the
// session when it no longer resolves. Run on startup, like the web client's
// check-auth-status dispatch.
func (c *Client) CheckAuth(ctx context.Context) bool {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return false
	}

	user, err := c.Me(ctx)
	if err != nil {
		c.Logout()
		return false
	}
	c.setSession(token, user)
	return true
}

// Authenticated reports whether a session is held. It does not revalidate;
// use CheckAuth for that.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != "" && c.user != nil
}

// CurrentUser returns the cached profile from the last successful auth call.
func (c *Client) CurrentUser() (*model.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil, false
	}
	return c.user, true
}

// SetToken installs a previously persisted token. Pair with CheckAuth.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.user = nil
}

// Token returns the stored session token for persistence.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.user = nil
}

func (c *Client) setSession(token string, user *model.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.user = user
}

func (c *Client) authorize(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}, wantStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != wantStatus {
		return responseError(httpResp)
	}
	return json.NewDecoder(httpResp.Body).Decode(out)
}

func responseError(resp *http.Response) error {
	var body common.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("%s (status %d)", body.Message, resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}
