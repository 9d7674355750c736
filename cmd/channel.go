package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/urfave/cli/v3"
)

// ChannelList prints the authenticated user's uploads.
func (r *Runner) ChannelList(ctx context.Context, cmd *cli.Command) error {
	videos, err := r.client.MyVideos(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch channel: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}

	r.writePlainHeader(fmt.Sprintf("My Channel (%d)", len(videos)))
	for _, v := range videos {
		r.writePlain("%s  %s\n", v.VideoID, v.Title)
		r.writePlain("    %d views • %d likes • %d comments\n", v.Views, v.LikeCount(), v.CommentCount())
	}
	return nil
}

// ChannelUpdate edits a video's metadata. The title is required and must be
// non-empty after trimming; the server re-verifies ownership.
func (r *Runner) ChannelUpdate(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	title := shared.CleanText(cmd.String("title"))
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", shared.ErrEmptyTitle)
	}

	update := api.VideoUpdate{
		Title:       title,
		Description: cmd.String("description"),
		Category:    cmd.String("category"),
	}

	if err := r.client.UpdateVideo(ctx, videoID, update); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	return r.writePlain("✓ Updated %s\n", videoID)
}

// ChannelDelete removes a video and its comments. The --yes flag is the
// confirmation gate: without it no request is sent.
func (r *Runner) ChannelDelete(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") {
		r.writePlain("Deleting %s removes the video and all of its comments.\n", videoID)
		return r.writePlain("Re-run with --yes to confirm.\n")
	}

	if err := r.client.DeleteVideo(ctx, videoID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	return r.writePlain("✓ Deleted %s\n", videoID)
}
