// Package tasks implements long-running channel operations with real-time progress reporting.
//
// The core abstraction is [ExportEngine], which exports the authenticated
// user's uploads (metadata plus comments) to disk. Fetches run through a
// rate limiter and a bounded worker pool writes the files; partial failures
// are collected per video rather than aborting the run. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers. Updates use select with default to prevent blocking.
package tasks
