package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tubecli/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:5000/api"

// TokenSource yields the current bearer credential, or "" when anonymous.
// Reading through a function keeps the client current across login/logout
// without rebuilding it.
type TokenSource func() string

// Client provides typed access to the platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	token      TokenSource
	logger     *log.Logger
}

// NewClient creates a platform API client from configuration.
//
// A nil token source is treated as permanently anonymous; a nil logger gets
// the shared default.
func NewClient(cfg shared.APIConfig, token TokenSource, logger *log.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if token == nil {
		token = func() string { return "" }
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		token:      token,
		logger:     logger,
	}
}

// SetHTTPClient replaces the underlying HTTP client (used by tests).
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// APIError carries the HTTP status and the server-provided message from a
// non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error: status %d", e.Status)
}

// Unwrap maps the response status onto the shared error taxonomy so callers
// can branch with errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return shared.ErrUnauthorized
	case http.StatusForbidden:
		return shared.ErrForbidden
	case http.StatusNotFound:
		return shared.ErrVideoNotFound
	default:
		return shared.ErrAPIRequest
	}
}

// NotFound reports whether the error is a 404.
func (e *APIError) NotFound() bool { return e.Status == http.StatusNotFound }

// do performs a single request against the platform API.
//
// The bearer header is attached only when authed is set; an authed call with
// no credential fails fast with [shared.ErrLoginRequired] and never reaches
// the network. Transport failures wrap [shared.ErrNetwork]; non-2xx statuses
// become an [*APIError] with the server's message when the body carries one.
func (c *Client) do(ctx context.Context, method, path string, body, result any, authed bool) error {
	token := c.token()
	if authed && token == "" {
		return shared.ErrLoginRequired
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// serverMessage extracts the conventional {"message": ...} error payload.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
