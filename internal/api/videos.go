package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/tubecli/internal/shared"
)

// Video retrieves a full video aggregate by identifier.
//
// There is no partial or delta fetch; every call replaces the whole
// aggregate. A 404 yields [shared.ErrVideoNotFound].
func (c *Client) Video(ctx context.Context, videoID string) (*Video, error) {
	var video Video
	path := fmt.Sprintf("/videos/%s", url.PathEscape(videoID))
	if err := c.do(ctx, http.MethodGet, path, nil, &video, false); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
		}
		return nil, err
	}
	return &video, nil
}

// List retrieves the public video feed.
func (c *Client) List(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.do(ctx, http.MethodGet, "/videos", nil, &videos, false); err != nil {
		return nil, err
	}
	return videos, nil
}

// Suggested retrieves related videos from the same category, excluding the
// one currently being watched.
func (c *Client) Suggested(ctx context.Context, category, excludeID string) ([]Video, error) {
	var videos []Video
	path := fmt.Sprintf("/videos/suggest/%s/%s", url.PathEscape(category), url.PathEscape(excludeID))
	if err := c.do(ctx, http.MethodGet, path, nil, &videos, false); err != nil {
		return nil, err
	}
	return videos, nil
}

// RegisterView increments the server-side view counter for a video.
//
// Fire-and-forget semantics: the caller logs failures and never surfaces or
// retries them, so the counter is at-least-once and possibly lossy.
func (c *Client) RegisterView(ctx context.Context, videoID string) error {
	path := fmt.Sprintf("/videos/%s/view", url.PathEscape(videoID))
	return c.do(ctx, http.MethodPut, path, nil, nil, false)
}

// Like toggles the caller's membership in the video's like set. The server
// enforces mutual exclusion with the dislike set; callers reconcile by
// refetching the aggregate rather than re-deriving membership locally.
func (c *Client) Like(ctx context.Context, videoID string) error {
	path := fmt.Sprintf("/videos/%s/like", url.PathEscape(videoID))
	return c.do(ctx, http.MethodPut, path, struct{}{}, nil, true)
}

// Dislike toggles the caller's membership in the video's dislike set.
func (c *Client) Dislike(ctx context.Context, videoID string) error {
	path := fmt.Sprintf("/videos/%s/dislike", url.PathEscape(videoID))
	return c.do(ctx, http.MethodPut, path, struct{}{}, nil, true)
}

// MyVideos lists the authenticated user's uploads.
func (c *Client) MyVideos(ctx context.Context) ([]Video, error) {
	var videos []Video
	if err := c.do(ctx, http.MethodGet, "/videos/channel/my-videos", nil, &videos, true); err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateVideo modifies owner-editable metadata on a video. The server
// re-verifies ownership regardless of what the client has checked.
func (c *Client) UpdateVideo(ctx context.Context, videoID string, update VideoUpdate) error {
	path := fmt.Sprintf("/videos/channel/%s", url.PathEscape(videoID))
	return c.do(ctx, http.MethodPut, path, update, nil, true)
}

// DeleteVideo removes a video and, server-side, all of its comments.
func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	path := fmt.Sprintf("/videos/channel/%s", url.PathEscape(videoID))
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// Upload creates a new video from metadata and returns the created aggregate.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*Video, error) {
	var video Video
	if err := c.do(ctx, http.MethodPost, "/videos/upload", req, &video, true); err != nil {
		return nil, err
	}
	return &video, nil
}
