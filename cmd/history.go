package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// HistoryList prints recently watched videos from the local store.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	entries, err := repo.List(map[string]any{"limit": int(cmd.Int("limit"))})
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if cmd.Bool("json") {
		type entryJSON struct {
			VideoID   string `json:"video_id"`
			Title     string `json:"title"`
			Uploader  string `json:"uploader"`
			WatchedAt string `json:"watched_at"`
		}
		out := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryJSON{
				VideoID:   e.VideoID(),
				Title:     e.Title(),
				Uploader:  e.Uploader(),
				WatchedAt: e.WatchedAt().Format("2006-01-02 15:04"),
			})
		}
		return r.writeJSON(out, true)
	}

	r.writePlainHeader(fmt.Sprintf("Watch History (%d)", len(entries)))
	for _, e := range entries {
		r.writePlain("%s  %s (%s) • %s\n",
			e.WatchedAt().Format("2006-01-02 15:04"), e.Title(), e.Uploader(), e.VideoID())
	}
	return nil
}

// HistoryClear drops the local watch history.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.historyRepo()
	if err != nil {
		return err
	}

	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return r.writePlain("✓ History cleared\n")
}
