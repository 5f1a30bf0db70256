// Package probe is a client for the mock API contract. CI jobs use it to
// smoke-test a deployed instance.
package probe

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

	"github.com/84adam/jenkins-test-app/mockapi"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Client talks to one server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for baseURL with a bounded request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// AppInfo fetches GET /api/app/info.
func (c *Client) AppInfo(ctx context.Context) (*mockapi.AppInfo, error) {
	var info mockapi.AppInfo
	if err := c.do(ctx, http.MethodGet, "/api/app/info", "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Health fetches GET /api/health.
func (c *Client) Health(ctx context.Context) (*mockapi.HealthResponse, error) {
	var health mockapi.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", "", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// SubmitResult posts result to /api/test/result.
func (c *Client) SubmitResult(ctx context.Context, result any) (*mockapi.ResultResponse, error) {
	var resp mockapi.ResultResponse
	if err := c.do(ctx, http.MethodPost, "/api/test/result", "", result, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*mockapi.LoginResponse, error) {
	var resp mockapi.LoginResponse
	req := mockapi.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the profile of the token's user.
func (c *Client) Profile(ctx context.Context, token string) (*mockapi.Profile, error) {
	var profile mockapi.Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var e mockapi.ErrorResponse
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
