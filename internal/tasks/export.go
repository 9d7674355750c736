package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/tubecli/internal/formatter"
	"github.com/desertthunder/tubecli/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for channel exports.
type ExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: channel_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// Export exports the authenticated user's uploads concurrently with rate
// limiting and progress tracking.
//
// The upload list comes first; each full aggregate is then fetched through a
// rate limiter and handed to a worker pool for formatting and writing.
// Partial failures are recorded per video, and a manifest file summarizing
// the run is written last.
func (e *ExportEngine) Export(ctx context.Context, prog chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library not initialized", shared.ErrAPIRequest)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("channel_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.logger.Debug("starting channel export", "format", opts.Format, "workers", opts.NumWorkers, "dir", opts.OutputDir)

	e.sendProgress(prog, fetchingChannelUpdate())
	uploads, err := e.library.MyVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel uploads: %w", err)
	}
	e.sendProgress(prog, foundChannelUpdate(len(uploads)))

	result := &ExportResult{
		TotalVideos:     len(uploads),
		OutputDirectory: opts.OutputDir,
		Results:         make([]VideoExportResult, 0, len(uploads)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan VideoExportJob, len(uploads))
	results := make(chan VideoExportResult, len(uploads))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, upload := range uploads {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			e.sendProgress(prog, fetchingVideoUpdate(i+1, len(uploads), upload.Title))

			video, err := e.library.Video(ctx, upload.VideoID)
			if err != nil {
				results <- VideoExportResult{
					VideoID: upload.VideoID,
					Title:   upload.Title,
					Success: false,
					Error:   fmt.Sprintf("failed to fetch video: %v", err),
				}
				continue
			}

			jobs <- VideoExportJob{VideoID: upload.VideoID, Video: video}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(uploads), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(uploads), res.Title, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.logger.Info("channel export finished", "exported", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker is a worker goroutine that exports videos from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan VideoExportJob,
	results chan<- VideoExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleVideo(job, opts)
	}
}

// exportSingleVideo exports a single video to the appropriate format.
func (e *ExportEngine) exportSingleVideo(j VideoExportJob, opts ExportOpts) VideoExportResult {
	result := VideoExportResult{
		VideoID: j.VideoID,
		Title:   j.Video.Title,
		Success: false,
		Files:   []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.VideoID)
		csvRes, err := formatter.WriteCSVExport(j.Video, baseFilepath)
		if err != nil {
			result.Error = fmt.Sprintf("CSV export failed: %v", err)
			return result
		}
		result.Files = []string{csvRes.CommentsFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.VideoID)
		mdRes, err := formatter.WriteMarkdownExport(j.Video, outputDir)
		if err != nil {
			result.Error = fmt.Sprintf("markdown export failed: %v", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_comments.txt", j.VideoID))
		path, err := formatter.WriteTextExport(j.Video, txtPath)
		if err != nil {
			result.Error = fmt.Sprintf("text export failed: %v", err)
			return result
		}
		result.Files = []string{path}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.VideoID))
		data, err := shared.MarshalJSON(j.Video, true)
		if err != nil {
			result.Error = fmt.Sprintf("JSON marshal failed: %v", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Sprintf("JSON write failed: %v", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}
