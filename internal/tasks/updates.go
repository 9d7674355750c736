package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchChannel Phase = iota
	FetchVideo
	ExportVideo
)

func (p Phase) String() string {
	switch p {
	case FetchChannel:
		return "fetch_channel"
	case FetchVideo:
		return "fetch_video"
	case ExportVideo:
		return "export_video"
	default:
		return ""
	}
}

func fetchingChannelUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChannel,
		Step:    1,
		Total:   1,
		Message: "Fetching channel uploads...",
	}
}

func foundChannelUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchChannel,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d uploads", total),
	}
}

func fetchingVideoUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching: %s...", step, total, title),
	}
}

func exportCompletedUpdate(step, total int, title string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, title, filesCount),
	}
}

func exportFailedUpdate(step, total int, title string, errMsg string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, title, errMsg),
	}
}
