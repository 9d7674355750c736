package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/models"
	"github.com/desertthunder/tubecli/internal/reconcile"
	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/urfave/cli/v3"
)

// VideosList prints the public video feed.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	videos, err := r.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Videos (%d)", len(videos)))
	for _, v := range videos {
		r.writePlain("%s  %s\n", v.VideoID, v.Title)
		r.writePlain("    %s • %d views • %d comments\n", v.DisplayUploader(), v.Views, v.CommentCount())
	}
	return nil
}

// VideosGet loads a video aggregate, registers a view, records local watch
// history, and prints the projection.
func (r *Runner) VideosGet(ctx context.Context, cmd *cli.Command) error {
	videoID := cmd.StringArg("id")
	if videoID == "" {
		return fmt.Errorf("%w: video id", shared.ErrMissingArgument)
	}

	watch := reconcile.NewWatchSession(r.client, r.sessions, r.logger)
	if err := watch.Load(ctx, videoID); err != nil {
		return err
	}

	if repo, err := r.historyRepo(); err == nil {
		vm := watch.Project()
		entry := models.NewHistoryEntry(0, vm.VideoID, vm.Title, vm.Uploader)
		if err := repo.Create(entry); err != nil {
			r.logger.Warn("failed to record history", "error", err)
		}
	}

	if cmd.Bool("json") {
		video, _ := watch.Video()
		return r.writeJSON(video, true)
	}

	vm := watch.Project()
	r.writePlainHeader(vm.Title)
	r.writePlain("%s • %d views • 👍 %d • 👎 %d\n", vm.Uploader, vm.Views, vm.LikeCount, vm.DislikeCount)
	r.writePlain("Category: %s\n", vm.Category)
	r.writePlainln("%s", vm.Description)

	r.writePlain("Comments (%d):\n", vm.CommentCount)
	for _, c := range vm.Comments {
		marker := " "
		if c.CanEdit {
			marker = "*"
		}
		r.writePlain("%s %s  %s: %s\n", marker, c.CommentID, c.Username, c.Text)
	}
	return nil
}

// VideosSuggest lists related videos from a category.
func (r *Runner) VideosSuggest(ctx context.Context, cmd *cli.Command) error {
	videos, err := r.client.Suggested(ctx, cmd.String("category"), cmd.String("exclude"))
	if err != nil {
		return fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}

	r.writePlainHeader(fmt.Sprintf("Suggested (%d)", len(videos)))
	for _, v := range videos {
		r.writePlain("%s  %s (%s)\n", v.VideoID, v.Title, v.DisplayUploader())
	}
	return nil
}

// VideosUpload publishes a new video from metadata.
func (r *Runner) VideosUpload(ctx context.Context, cmd *cli.Command) error {
	title := shared.CleanText(cmd.String("title"))
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", shared.ErrEmptyTitle)
	}
	videoURL := shared.CleanText(cmd.String("url"))
	if videoURL == "" {
		return fmt.Errorf("%w: url cannot be empty", shared.ErrInvalidInput)
	}

	user, ok := r.sessions.Current()
	if !ok {
		return shared.ErrLoginRequired
	}

	video, err := r.client.Upload(ctx, api.UploadRequest{
		Title:       title,
		Description: cmd.String("description"),
		Category:    cmd.String("category"),
		ChannelID:   user.UserID,
		VideoURL:    videoURL,
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	return r.writePlain("✓ Published %s (%s)\n", video.Title, video.VideoID)
}
