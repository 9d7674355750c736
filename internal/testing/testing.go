// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/tubecli/internal/api"
)

// MockPlatform is a scriptable test double for [reconcile.Platform].
//
// Every method records its invocation and returns the configured value;
// tests assert on call counts to verify that failed preconditions never
// reach the network layer.
type MockPlatform struct {
	VideoFn         func(ctx context.Context, id string) (*api.Video, error)
	LikeFn          func(ctx context.Context, id string) error
	DislikeFn       func(ctx context.Context, id string) error
	AddCommentFn    func(ctx context.Context, videoID string, req api.CommentRequest) (*api.Comment, error)
	EditCommentFn   func(ctx context.Context, videoID, commentID, text string) (*api.Video, error)
	DeleteCommentFn func(ctx context.Context, videoID, commentID string) (*api.Video, error)
	RegisterViewFn  func(ctx context.Context, id string) error

	Calls map[string]int
}

func NewMockPlatform() *MockPlatform {
	return &MockPlatform{Calls: make(map[string]int)}
}

func (m *MockPlatform) record(name string) {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[name]++
}

func (m *MockPlatform) Video(ctx context.Context, id string) (*api.Video, error) {
	m.record("Video")
	if m.VideoFn != nil {
		return m.VideoFn(ctx, id)
	}
	return &api.Video{VideoID: id}, nil
}

func (m *MockPlatform) Like(ctx context.Context, id string) error {
	m.record("Like")
	if m.LikeFn != nil {
		return m.LikeFn(ctx, id)
	}
	return nil
}

func (m *MockPlatform) Dislike(ctx context.Context, id string) error {
	m.record("Dislike")
	if m.DislikeFn != nil {
		return m.DislikeFn(ctx, id)
	}
	return nil
}

func (m *MockPlatform) AddComment(ctx context.Context, videoID string, req api.CommentRequest) (*api.Comment, error) {
	m.record("AddComment")
	if m.AddCommentFn != nil {
		return m.AddCommentFn(ctx, videoID, req)
	}
	return &api.Comment{CommentID: "c-new", UserID: req.UserID, Username: req.Username, Text: req.Text}, nil
}

func (m *MockPlatform) EditComment(ctx context.Context, videoID, commentID, text string) (*api.Video, error) {
	m.record("EditComment")
	if m.EditCommentFn != nil {
		return m.EditCommentFn(ctx, videoID, commentID, text)
	}
	return &api.Video{VideoID: videoID}, nil
}

func (m *MockPlatform) DeleteComment(ctx context.Context, videoID, commentID string) (*api.Video, error) {
	m.record("DeleteComment")
	if m.DeleteCommentFn != nil {
		return m.DeleteCommentFn(ctx, videoID, commentID)
	}
	return &api.Video{VideoID: videoID}, nil
}

func (m *MockPlatform) RegisterView(ctx context.Context, id string) error {
	m.record("RegisterView")
	if m.RegisterViewFn != nil {
		return m.RegisterViewFn(ctx, id)
	}
	return nil
}

// NetworkCalls sums the mutation and fetch invocations that would have hit
// the wire.
func (m *MockPlatform) NetworkCalls() int {
	total := 0
	for _, n := range m.Calls {
		total += n
	}
	return total
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

var _ io.ReadCloser = (*FCloser)(nil)
