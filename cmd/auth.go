package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in with email and password and persists the session pair.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("signing in", "email", email)

	resp, err := r.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := r.sessions.Set(resp.User, resp.Token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return r.writePlain("✓ Signed in as %s\n", resp.User.Username)
}

// AuthRegister creates an account and signs in with the issued token.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := shared.CleanText(cmd.String("username"))
	if username == "" {
		return fmt.Errorf("%w: username cannot be empty", shared.ErrInvalidInput)
	}

	resp, err := r.client.Register(ctx, username, cmd.String("email"), cmd.String("password"))
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := r.sessions.Set(resp.User, resp.Token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return r.writePlain("✓ Account created, signed in as %s\n", resp.User.Username)
}

// AuthLogout clears the saved session pair.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.sessions.Authenticated() {
		return r.writePlain("Not signed in\n")
	}

	if err := r.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return r.writePlain("✓ Signed out\n")
}

// AuthStatus shows the current session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	user, ok := r.sessions.Current()
	if !ok {
		return r.writePlain("✗ Not signed in\n")
	}

	r.writePlain("✓ Signed in\n")
	r.writePlain("User: %s (%s)\n", user.Username, user.UserID)
	return nil
}
