package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/session"
	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/urfave/cli/v3"
)

// newTestRunner builds a runner with a signed-in session whose client points
// at the given server.
func newTestRunner(t *testing.T, serverURL string, output *bytes.Buffer) *Runner {
	t.Helper()

	logger := shared.NewLogger(output)
	sessions := session.NewManager(nil, logger)
	if err := sessions.Set(api.User{UserID: "u1", Username: "gopher"}, "tok-1"); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	client := api.NewClient(
		shared.APIConfig{BaseURL: serverURL, RequestsPerSecond: 1000},
		sessions.TokenSource(),
		logger,
	)

	return NewRunner(RunnerOpts{
		Sessions: sessions,
		Client:   client,
		Logger:   logger,
		Output:   output,
	})
}

// run dispatches args through the full command tree, flag parsing included.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	root := &cli.Command{Name: "tubecli", Commands: r.register()}
	return root.Run(context.Background(), append([]string{"tubecli"}, args...))
}

func TestChannelDelete(t *testing.T) {
	t.Run("Without Confirmation Sends No Request", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		output := &bytes.Buffer{}
		runner := newTestRunner(t, server.URL, output)

		if err := run(t, runner, "channel", "delete", "v1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if requests != 0 {
			t.Errorf("expected zero network calls without --yes, got %d", requests)
		}
		if !strings.Contains(output.String(), "--yes") {
			t.Errorf("expected confirmation hint in output, got %q", output.String())
		}
	})

	t.Run("With Confirmation Deletes The Video", func(t *testing.T) {
		var gotMethod, gotPath string
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			gotMethod = r.Method
			gotPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
		}))
		defer server.Close()

		output := &bytes.Buffer{}
		runner := newTestRunner(t, server.URL, output)

		if err := run(t, runner, "channel", "delete", "--yes", "v1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if requests != 1 {
			t.Errorf("expected exactly one request, got %d", requests)
		}
		if gotMethod != http.MethodDelete || gotPath != "/videos/channel/v1" {
			t.Errorf("unexpected request %s %s", gotMethod, gotPath)
		}
		if !strings.Contains(output.String(), "✓ Deleted v1") {
			t.Errorf("expected deletion confirmation, got %q", output.String())
		}
	})

	t.Run("Server Failure Surfaces The Message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "not the owner"})
		}))
		defer server.Close()

		output := &bytes.Buffer{}
		runner := newTestRunner(t, server.URL, output)

		err := run(t, runner, "channel", "delete", "--yes", "v1")
		if err == nil {
			t.Fatal("expected error from forbidden delete")
		}
		if !strings.Contains(err.Error(), "not the owner") {
			t.Errorf("expected server message in error, got %v", err)
		}
	})
}
