package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubecli/internal/reconcile"
	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/urfave/cli/v3"
)

// watchFor loads a watch session for a comment mutation.
func (r *Runner) watchFor(ctx context.Context, videoID string) (*reconcile.WatchSession, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	watch := reconcile.NewWatchSession(r.client, r.sessions, r.logger)
	if err := watch.Load(ctx, videoID); err != nil {
		return nil, err
	}
	return watch, nil
}

// CommentAdd posts a comment and prints the server's copy.
func (r *Runner) CommentAdd(ctx context.Context, cmd *cli.Command) error {
	watch, err := r.watchFor(ctx, cmd.StringArg("video-id"))
	if err != nil {
		return err
	}

	comment, err := watch.AddComment(ctx, cmd.String("text"))
	if err != nil {
		return commentFailure(reconcile.ActionAddComment, err)
	}

	vm := watch.Project()
	r.writePlain("✓ Comment posted (%s)\n", comment.CommentID)
	return r.writePlain("Comments: %d\n", vm.CommentCount)
}

// CommentEdit replaces one of the caller's comments.
func (r *Runner) CommentEdit(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("comment-id")
	if commentID == "" {
		return fmt.Errorf("%w: comment id", shared.ErrMissingArgument)
	}

	watch, err := r.watchFor(ctx, cmd.StringArg("video-id"))
	if err != nil {
		return err
	}

	watch.BeginEdit(commentID)
	watch.SetDraft(cmd.String("text"))
	if err := watch.SubmitEdit(ctx); err != nil {
		return commentFailure(reconcile.ActionEditComment, err)
	}

	return r.writePlain("✓ Comment updated\n")
}

// CommentDelete removes one of the caller's comments.
func (r *Runner) CommentDelete(ctx context.Context, cmd *cli.Command) error {
	commentID := cmd.StringArg("comment-id")
	if commentID == "" {
		return fmt.Errorf("%w: comment id", shared.ErrMissingArgument)
	}

	watch, err := r.watchFor(ctx, cmd.StringArg("video-id"))
	if err != nil {
		return err
	}

	if err := watch.DeleteComment(ctx, commentID); err != nil {
		return commentFailure(reconcile.ActionDeleteComment, err)
	}

	vm := watch.Project()
	r.writePlain("✓ Comment deleted\n")
	return r.writePlain("Comments: %d\n", vm.CommentCount)
}

// commentFailure wraps a mutation error with its user-facing message.
func commentFailure(action reconcile.Action, err error) error {
	return fmt.Errorf("%s: %w", reconcile.FailureMessage(action, err), err)
}
