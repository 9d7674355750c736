package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/desertthunder/tubecli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export exports the authenticated user's uploads to disk, streaming
// progress lines as the worker pool runs.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if !r.sessions.Authenticated() {
		return shared.ErrLoginRequired
	}

	opts := tasks.ExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}
	if opts.Format == "" {
		opts.Format = r.config.Export.Format
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Export.OutputDir
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Export.NumWorkers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Export.RequestsPerSecond
	}

	engine := tasks.NewExportEngine(r.client, r.logger)

	prog := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Export(ctx, prog, opts)
	close(prog)
	<-done
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d/%d videos to %s", result.SuccessfulExports, result.TotalVideos, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("%d exports failed, see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}
