package reconcile

import (
	"context"
	"testing"

	"github.com/desertthunder/tubecli/internal/api"
	tu "github.com/desertthunder/tubecli/internal/testing"
)

func TestProject(t *testing.T) {
	newSession := func(t *testing.T, identity Identity) *WatchSession {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			return watchVideo(), nil
		}
		return loadedSession(t, platform, identity)
	}

	t.Run("Empty Before Load", func(t *testing.T) {
		s := NewWatchSession(tu.NewMockPlatform(), viewer, nil)

		vm := s.Project()
		if vm.VideoID != "" || vm.CommentCount != 0 {
			t.Errorf("expected zero view model, got %+v", vm)
		}
	})

	t.Run("Live Counts From Slices", func(t *testing.T) {
		s := newSession(t, viewer)

		vm := s.Project()
		if vm.LikeCount != 1 || vm.DislikeCount != 1 || vm.CommentCount != 2 {
			t.Errorf("unexpected counts: %d/%d/%d", vm.LikeCount, vm.DislikeCount, vm.CommentCount)
		}
	})

	t.Run("Ownership Gates Edit Controls", func(t *testing.T) {
		s := newSession(t, viewer)

		vm := s.Project()
		if !vm.Comments[0].CanEdit {
			t.Error("expected viewer's own comment to be editable")
		}
		if vm.Comments[1].CanEdit {
			t.Error("expected another author's comment to be read-only")
		}
	})

	t.Run("Anonymous Viewer Gets No Controls", func(t *testing.T) {
		s := newSession(t, anonymous)

		vm := s.Project()
		if vm.CanInteract {
			t.Error("expected CanInteract false for anonymous viewer")
		}
		for _, c := range vm.Comments {
			if c.CanEdit {
				t.Errorf("expected no editable comments, got %s", c.CommentID)
			}
		}
		if vm.Liked || vm.Disliked {
			t.Error("expected no membership flags without a session")
		}
	})

	t.Run("Membership Flags Follow Viewer", func(t *testing.T) {
		s := newSession(t, viewer)

		vm := s.Project()
		if vm.Liked {
			t.Error("u1 is not in the like set")
		}
		if !vm.Disliked {
			t.Error("u1 is in the dislike set")
		}
	})

	t.Run("At Most One Comment In Edit", func(t *testing.T) {
		s := newSession(t, viewer)

		s.BeginEdit("c1")
		s.SetDraft("work in progress")
		s.BeginEdit("c2")

		vm := s.Project()
		if vm.Comments[0].InEdit {
			t.Error("expected first edit target abandoned")
		}
		if vm.Comments[0].Draft != "" {
			t.Error("expected abandoned draft discarded")
		}
		if !vm.Comments[1].InEdit || vm.Comments[1].Draft != "second" {
			t.Errorf("expected second comment in edit seeded with its text, got %+v", vm.Comments[1])
		}
	})

	t.Run("Fallbacks For Optional Fields", func(t *testing.T) {
		platform := tu.NewMockPlatform()
		platform.VideoFn = func(ctx context.Context, id string) (*api.Video, error) {
			return &api.Video{VideoID: "v9", Title: "Untitled"}, nil
		}
		s := loadedSession(t, platform, viewer)

		vm := s.Project()
		if vm.Description != "No description provided" {
			t.Errorf("unexpected description fallback: %q", vm.Description)
		}
		if vm.Uploader != "Unknown channel" {
			t.Errorf("unexpected uploader fallback: %q", vm.Uploader)
		}
	})
}
