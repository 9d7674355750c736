package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileMe prints the authenticated user's profile.
func (r *Runner) ProfileMe(ctx context.Context, cmd *cli.Command) error {
	user, err := r.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlainHeader(user.Username)
	r.writePlain("ID: %s\n", user.UserID)
	if user.Email != "" {
		r.writePlain("Email: %s\n", user.Email)
	}
	if user.Avatar != "" {
		r.writePlain("Avatar: %s\n", user.Avatar)
	}
	return nil
}

// ProfileUpdate saves editable profile fields and refreshes the stored
// session snapshot so the comment author identity stays current.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	current, ok := r.sessions.Current()
	if !ok {
		return shared.ErrLoginRequired
	}

	user := api.User{
		UserID:   current.UserID,
		Username: current.Username,
		Email:    cmd.String("email"),
	}
	if v := shared.CleanText(cmd.String("username")); v != "" {
		user.Username = v
	}

	updated, err := r.client.UpdateProfile(ctx, user)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	return r.refreshSession(*updated)
}

// ProfileAvatar uploads a new avatar image.
func (r *Runner) ProfileAvatar(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: image path", shared.ErrMissingArgument)
	}

	updated, err := r.client.UpdateAvatar(ctx, path)
	if err != nil {
		return fmt.Errorf("avatar upload failed: %w", err)
	}

	return r.refreshSession(*updated)
}

// ProfileBanner uploads a new channel banner image.
func (r *Runner) ProfileBanner(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: image path", shared.ErrMissingArgument)
	}

	updated, err := r.client.UpdateBanner(ctx, path)
	if err != nil {
		return fmt.Errorf("banner upload failed: %w", err)
	}

	return r.refreshSession(*updated)
}

// refreshSession re-persists the session with a fresh identity snapshot,
// keeping the same token.
func (r *Runner) refreshSession(user api.User) error {
	token, ok := r.sessions.Token()
	if !ok {
		return shared.ErrLoginRequired
	}
	if err := r.sessions.Set(user, token); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	return r.writePlain("✓ Profile updated\n")
}
