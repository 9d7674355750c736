package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/desertthunder/tubecli/internal/shared"
)

// Login exchanges email + password for a bearer token and identity snapshot.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the issued token + user pair.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me retrieves the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile saves editable profile fields and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, user User) (*User, error) {
	var updated User
	if err := c.do(ctx, http.MethodPut, "/users/update", user, &updated, true); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAvatar uploads a new avatar image from a local file.
func (c *Client) UpdateAvatar(ctx context.Context, path string) (*User, error) {
	return c.uploadImage(ctx, "/users/avatar", "avatar", path)
}

// UpdateBanner uploads a new channel banner image from a local file.
func (c *Client) UpdateBanner(ctx context.Context, path string) (*User, error) {
	return c.uploadImage(ctx, "/users/banner", "banner", path)
}

// uploadImage sends a multipart form with a single file field. Profile image
// endpoints take form uploads rather than JSON.
func (c *Client) uploadImage(ctx context.Context, endpoint, field, path string) (*User, error) {
	token := c.token()
	if token == "" {
		return nil, shared.ErrLoginRequired
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: serverMessage(data)}
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &user, nil
}
