package tasks

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/shared"
)

// Library defines the platform calls the export engine depends on.
// Implemented by api.Client; the abstraction keeps the engine testable.
type Library interface {
	MyVideos(ctx context.Context) ([]api.Video, error)
	Video(ctx context.Context, id string) (*api.Video, error)
}

var _ Library = (*api.Client)(nil)

// VideoExportJob carries one fetched aggregate to a worker.
type VideoExportJob struct {
	VideoID string
	Video   *api.Video
}

// VideoExportResult is the outcome of exporting a single video.
type VideoExportResult struct {
	VideoID string   `json:"video_id"`
	Title   string   `json:"title"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ExportResult summarizes a full channel export run.
type ExportResult struct {
	TotalVideos       int                 `json:"total_videos"`
	SuccessfulExports int                 `json:"successful_exports"`
	FailedExports     int                 `json:"failed_exports"`
	OutputDirectory   string              `json:"output_directory"`
	ManifestPath      string              `json:"manifest_path,omitempty"`
	Results           []VideoExportResult `json:"results"`
}

// ExportEngine exports channel uploads with rate limiting and progress tracking.
type ExportEngine struct {
	library Library
	logger  *log.Logger
}

// NewExportEngine creates an engine backed by the given library.
func NewExportEngine(library Library, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{library: library, logger: shared.WithLogger(logger, "task", "export")}
}

// sendProgress delivers an update without blocking when the receiver lags.
func (e *ExportEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
