package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/shared"
	tu "github.com/desertthunder/tubecli/internal/testing"
)

func newTestClient(baseURL, token string) *api.Client {
	return api.NewClient(
		shared.APIConfig{BaseURL: baseURL, RequestsPerSecond: 1000},
		func() string { return token },
		shared.NewLogger(&tu.FWriter{}),
	)
}

func TestClient(t *testing.T) {
	t.Run("Attaches Bearer Header On Authenticated Calls", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]api.Video{})
		}))
		defer server.Close()

		client := newTestClient(server.URL, "tok-123")
		if _, err := client.MyVideos(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotAuth != "Bearer tok-123" {
			t.Errorf("expected bearer header, got %q", gotAuth)
		}
	})

	t.Run("No Bearer Header On Anonymous Calls", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(api.Video{VideoID: "v1"})
		}))
		defer server.Close()

		client := newTestClient(server.URL, "tok-123")
		if _, err := client.Video(context.Background(), "v1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotAuth != "" {
			t.Errorf("expected no auth header on public GET, got %q", gotAuth)
		}
	})

	t.Run("Authenticated Call Without Token Fails Fast", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		client := newTestClient(server.URL, "")
		err := client.Like(context.Background(), "v1")

		if !errors.Is(err, shared.ErrLoginRequired) {
			t.Errorf("expected ErrLoginRequired, got %v", err)
		}
		if requests != 0 {
			t.Errorf("expected zero network calls, got %d", requests)
		}
	})

	t.Run("Server Message Is Preserved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "not the owner"})
		}))
		defer server.Close()

		client := newTestClient(server.URL, "tok")
		err := client.DeleteVideo(context.Background(), "v1")

		if !errors.Is(err, shared.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
		if !strings.Contains(err.Error(), "not the owner") {
			t.Errorf("expected server message in error, got %v", err)
		}
	})

	t.Run("Status Mapping", func(t *testing.T) {
		tc := []struct {
			name   string
			status int
			want   error
		}{
			{name: "401 unauthorized", status: http.StatusUnauthorized, want: shared.ErrUnauthorized},
			{name: "403 forbidden", status: http.StatusForbidden, want: shared.ErrForbidden},
			{name: "500 generic", status: http.StatusInternalServerError, want: shared.ErrAPIRequest},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer server.Close()

				client := newTestClient(server.URL, "tok")
				err := client.Like(context.Background(), "v1")
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("Transport Failure Wraps Network Error", func(t *testing.T) {
		client := newTestClient("http://example.com", "")
		client.SetHTTPClient(&http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
		})

		_, err := client.Video(context.Background(), "v1")
		if !errors.Is(err, shared.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
	})

	t.Run("Failed Response Body Read", func(t *testing.T) {
		client := newTestClient("http://example.com", "")
		client.SetHTTPClient(&http.Client{
			Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
				Header:     http.Header{},
			}, nil),
		})

		_, err := client.Video(context.Background(), "v1")
		if err == nil || !strings.Contains(err.Error(), "failed to read response") {
			t.Errorf("expected read failure, got %v", err)
		}
	})

	t.Run("With Canceled Context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := newTestClient(server.URL, "")
		if _, err := client.Video(ctx, "v1"); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}
