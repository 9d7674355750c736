package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/shared"
	tu "github.com/desertthunder/tubecli/internal/testing"
)

type stubIdentity struct {
	user api.User
	ok   bool
}

func (s stubIdentity) Current() (api.User, bool) { return s.user, s.ok }

var viewer = stubIdentity{user: api.User{UserID: "u1", Username: "gopher"}, ok: true}
var anonymous = stubIdentity{}

func watchVideo() *api.Video {
	return &api.Video{
		VideoID:  "v1",
		Title:    "Intro to Go",
		Category: "education",
		Uploader: "gopher",
		Likes:    []string{"u2"},
		Dislikes: []string{"u1"},
		Comments: []api.Comment{
			{CommentID: "c1", UserID: "u1", Username: "gopher", Text: "first"},
			{CommentID: "c2", UserID: "u2", Username: "ferris", Text: "second"},
		},
	}
}

func loadedSession(t *testing.T, platform *tu.MockPlatform, identity Identity) *WatchSession {
	t.Helper()
	s := NewWatchSession(platform, identity, nil)
	if err := s.Load(context.Background(), "v1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return s
}

func TestWatchSessionLoad(t *testing.T) {
	t.Run("Fetches Aggregate And Registers View", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			return watchVideo(), nil
		}

		s := loadedSession(t, platform, viewer)

		video, ok := s.Video()
		if !ok || video.VideoID != "v1" {
			t.Fatalf("expected loaded aggregate, got %v ok=%v", video, ok)
		}
		if platform.Calls["Video"] != 1 || platform.Calls["RegisterView"] != 1 {
			t.Errorf("unexpected calls: %v", platform.Calls)
		}
	})

	t.Run("View Registration Failure Is Swallowed", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		platform.RegisterViewFn = func(ctx context.Context, id string) error {
			return errors.New("counter offline")
		}

		s := NewWatchSession(platform, viewer, nil)
		if err := s.Load(context.Background(), "v1"); err != nil {
			t.Fatalf("expected load to succeed despite view failure, got %v", err)
		}
	})

	t.Run("Missing Video Surfaces Error", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			return nil, shared.ErrVideoNotFound
		}

		s := NewWatchSession(platform, viewer, nil)
		if err := s.Load(context.Background(), "gone"); !errors.Is(err, shared.ErrVideoNotFound) {
			t.Errorf("expected ErrVideoNotFound, got %v", err)
		}
	})
}

func TestWatchSessionReactions(t *testing.T) {
	t.Run("Like Reconciles By Refetch", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		loaded := false
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			if !loaded {
				loaded = true
				return watchVideo(), nil
			}
			// the server moved u1 from the dislike set to the like set
			v := watchVideo()
			v.Likes = []string{"u1", "u2"}
			v.Dislikes = []string{}
			return v, nil
		}

		s := loadedSession(t, platform, viewer)
		if err := s.Like(context.Background()); err != nil {
			t.Fatalf("like failed: %v", err)
		}

		vm := s.Project()
		if vm.LikeCount != 2 || vm.DislikeCount != 0 {
			t.Errorf("expected counts 2/0, got %d/%d", vm.LikeCount, vm.DislikeCount)
		}
		if !vm.Liked || vm.Disliked {
			t.Errorf("expected liked and not disliked, got liked=%v disliked=%v", vm.Liked, vm.Disliked)
		}
		if platform.Calls["Like"] != 1 || platform.Calls["Video"] != 2 {
			t.Errorf("unexpected calls: %v", platform.Calls)
		}
	})

	t.Run("Unauthenticated Reactions Never Hit The Network", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		s := loadedSession(t, platform, anonymous)
		baseline := platform.NetworkCalls()

		if err := s.Like(context.Background()); !errors.Is(err, shared.ErrLoginRequired) {
			t.Errorf("expected ErrLoginRequired, got %v", err)
		}
		if err := s.Dislike(context.Background()); !errors.Is(err, shared.ErrLoginRequired) {
			t.Errorf("expected ErrLoginRequired, got %v", err)
		}
		if platform.NetworkCalls() != baseline {
			t.Errorf("expected zero network calls, got %d extra", platform.NetworkCalls()-baseline)
		}
	})

	t.Run("Failed Like Leaves Aggregate Untouched", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			return watchVideo(), nil
		}
		platform.LikeFn = func(ctx context.Context, id string) error {
			return &api.APIError{Status: 500, Message: "server exploded"}
		}

		s := loadedSession(t, platform, viewer)
		before := s.Project()

		if err := s.Like(context.Background()); err == nil {
			t.Fatal("expected like to fail")
		}
		after := s.Project()
		if after.LikeCount != before.LikeCount || after.DislikeCount != before.DislikeCount {
			t.Error("aggregate changed on failed mutation")
		}
		if s.Phase() != Failed {
			t.Errorf("expected Failed phase, got %v", s.Phase())
		}
	})
}

func TestWatchSessionComments(t *testing.T) {
	t.Run("Add Appends Server Copy In Order", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			return watchVideo(), nil
		}
		next := 0
		platform.AddCommentFn = func(ctx context.Context, videoID string, req api.CommentRequest) (*api.Comment, error) {
			next++
			return &api.Comment{CommentID: fmt.Sprintf("c-new-%d", next), UserID: req.UserID, Username: req.Username, Text: req.Text}, nil
		}

		s := loadedSession(t, platform, viewer)
		if _, err := s.AddComment(context.Background(), "third"); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := s.AddComment(context.Background(), "fourth"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		vm := s.Project()
		if vm.CommentCount != 4 {
			t.Fatalf("expected 4 comments, got %d", vm.CommentCount)
		}
		if vm.Comments[2].Text != "third" || vm.Comments[3].Text != "fourth" {
			t.Errorf("unexpected tail order: %q then %q", vm.Comments[2].Text, vm.Comments[3].Text)
		}
		// the rest of the aggregate stays put
		if vm.LikeCount != 1 || vm.DislikeCount != 1 {
			t.Errorf("aggregate drifted: %d/%d", vm.LikeCount, vm.DislikeCount)
		}
	})

	t.Run("Whitespace Comment Makes Zero Network Calls", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		s := loadedSession(t, platform, viewer)
		baseline := platform.NetworkCalls()

		if _, err := s.AddComment(context.Background(), "   \n\t "); !errors.Is(err, shared.ErrEmptyComment) {
			t.Errorf("expected ErrEmptyComment, got %v", err)
		}
		if platform.NetworkCalls() != baseline {
			t.Errorf("expected zero network calls, got %d extra", platform.NetworkCalls()-baseline)
		}
	})

	t.Run("Unauthenticated Add Makes Zero Network Calls", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		s := loadedSession(t, platform, anonymous)
		baseline := platform.NetworkCalls()

		if _, err := s.AddComment(context.Background(), "hello"); !errors.Is(err, shared.ErrLoginRequired) {
			t.Errorf("expected ErrLoginRequired, got %v", err)
		}
		if platform.NetworkCalls() != baseline {
			t.Error("expected zero network calls")
		}
	})

	t.Run("Add Trims Before Sending", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		var sent api.CommentRequest
		platform.AddCommentFn = func(ctx context.Context, videoID string, req api.CommentRequest) (*api.Comment, error) {
			sent = req
			return &api.Comment{CommentID: "c3", UserID: req.UserID, Text: req.Text}, nil
		}

		s := loadedSession(t, platform, viewer)
		if _, err := s.AddComment(context.Background(), "  padded  "); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if sent.Text != "padded" {
			t.Errorf("expected trimmed text, got %q", sent.Text)
		}
		if sent.UserID != "u1" || sent.Username != "gopher" {
			t.Errorf("expected author snapshot from session, got %+v", sent)
		}
	})

	t.Run("Stale Add Response Is Discarded", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			v := watchVideo()
			v.VideoID = id
			return v, nil
		}

		s := loadedSession(t, platform, viewer)
		// a new load lands while the comment request is in flight
		platform.AddCommentFn = func(ctx context.Context, videoID string, req api.CommentRequest) (*api.Comment, error) {
			if err := s.Load(ctx, "v2"); err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			return &api.Comment{CommentID: "c-late", UserID: req.UserID, Text: req.Text}, nil
		}

		if _, err := s.AddComment(context.Background(), "late arrival"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		video, _ := s.Video()
		if video.VideoID != "v2" {
			t.Fatalf("expected the newer aggregate, got %s", video.VideoID)
		}
		for _, c := range video.Comments {
			if c.CommentID == "c-late" {
				t.Error("stale comment applied to the wrong aggregate")
			}
		}
	})
}

func TestWatchSessionEdit(t *testing.T) {
	newPlatform := func() *tu.MockPlatform {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			return watchVideo(), nil
		}
		return platform
	}

	t.Run("Submit Replaces Aggregate And Ends Edit", func(t *testing.T) {
		platform := newPlatform()
		platform.EditCommentFn = func(ctx context.Context, videoID, commentID, text string) (*api.Video, error) {
			v := watchVideo()
			v.Comments[0].Text = text
			return v, nil
		}

		s := loadedSession(t, platform, viewer)
		s.BeginEdit("c1")
		s.SetDraft("first, revised")
		if err := s.SubmitEdit(context.Background()); err != nil {
			t.Fatalf("submit failed: %v", err)
		}

		vm := s.Project()
		if vm.Comments[0].Text != "first, revised" {
			t.Errorf("expected edited text, got %q", vm.Comments[0].Text)
		}
		if vm.Comments[0].InEdit {
			t.Error("expected edit mode cleared after submit")
		}
	})

	t.Run("Whitespace Draft Rejected Without Network", func(t *testing.T) {
		platform := newPlatform()
		s := loadedSession(t, platform, viewer)
		baseline := platform.NetworkCalls()

		s.BeginEdit("c1")
		s.SetDraft("   ")
		if err := s.SubmitEdit(context.Background()); !errors.Is(err, shared.ErrEmptyComment) {
			t.Errorf("expected ErrEmptyComment, got %v", err)
		}
		if platform.NetworkCalls() != baseline {
			t.Error("expected zero network calls")
		}
	})

	t.Run("Failed Submit Keeps Draft", func(t *testing.T) {
		platform := newPlatform()
		platform.EditCommentFn = func(ctx context.Context, videoID, commentID, text string) (*api.Video, error) {
			return nil, &api.APIError{Status: 403, Message: "Not your comment"}
		}

		s := loadedSession(t, platform, viewer)
		s.BeginEdit("c1")
		s.SetDraft("revised")
		if err := s.SubmitEdit(context.Background()); err == nil {
			t.Fatal("expected submit to fail")
		}

		vm := s.Project()
		if !vm.Comments[0].InEdit || vm.Comments[0].Draft != "revised" {
			t.Errorf("expected draft preserved for retry, got %+v", vm.Comments[0])
		}
	})

	t.Run("Delete Replaces Aggregate", func(t *testing.T) {
		platform := newPlatform()
		platform.DeleteCommentFn = func(ctx context.Context, videoID, commentID string) (*api.Video, error) {
			v := watchVideo()
			v.Comments = v.Comments[1:]
			return v, nil
		}

		s := loadedSession(t, platform, viewer)
		if err := s.DeleteComment(context.Background(), "c1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		vm := s.Project()
		if vm.CommentCount != 1 || vm.Comments[0].CommentID != "c2" {
			t.Errorf("unexpected comments after delete: %+v", vm.Comments)
		}
	})

	t.Run("Unauthenticated Delete Makes Zero Network Calls", func(t *testing.T) {
		platform := newPlatform()
		s := loadedSession(t, platform, anonymous)
		baseline := platform.NetworkCalls()

		if err := s.DeleteComment(context.Background(), "c1"); !errors.Is(err, shared.ErrLoginRequired) {
			t.Errorf("expected ErrLoginRequired, got %v", err)
		}
		if platform.NetworkCalls() != baseline {
			t.Error("expected zero network calls")
		}
	})
}

func TestFailureMessage(t *testing.T) {
	t.Run("Server Message Wins", func(t *testing.T) {
		err := &api.APIError{Status: 403, Message: "Not your comment"}
		if got := FailureMessage(ActionEditComment, err); got != "Not your comment" {
			t.Errorf("expected server message, got %q", got)
		}
	})

	t.Run("Fallback Per Action", func(t *testing.T) {
		cases := map[Action]string{
			ActionLike:          "Could not like video",
			ActionDislike:       "Could not dislike video",
			ActionAddComment:    "Could not post comment",
			ActionEditComment:   "Could not update comment",
			ActionDeleteComment: "Could not delete comment",
		}
		for action, want := range cases {
			if got := FailureMessage(action, errors.New("wire failure")); got != want {
				t.Errorf("%s: expected %q, got %q", action, want, got)
			}
		}
	})
}
