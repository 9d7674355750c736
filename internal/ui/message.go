package ui

import (
	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/reconcile"
)

// feedFetchedMsg carries the public video feed.
type feedFetchedMsg struct {
	videos []api.Video
	err    error
}

// channelFetchedMsg carries the authenticated user's uploads.
type channelFetchedMsg struct {
	videos []api.Video
	err    error
}

// videoLoadedMsg signals that the watch session finished loading an aggregate.
type videoLoadedMsg struct {
	videoID string
	err     error
}

// suggestedFetchedMsg carries related videos for the watch view sidebar.
type suggestedFetchedMsg struct {
	videos []api.Video
	err    error
}

// mutationDoneMsg reports the outcome of a dispatched mutation.
type mutationDoneMsg struct {
	action reconcile.Action
	err    error
}

// videoDeletedMsg reports a channel delete.
type videoDeletedMsg struct {
	videoID string
	err     error
}

// videoUpdatedMsg reports a channel metadata update.
type videoUpdatedMsg struct {
	videoID string
	err     error
}

// toastTickMsg drives toast expiry.
type toastTickMsg struct{}
