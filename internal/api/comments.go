package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/tubecli/internal/shared"
)

// AddComment posts a new comment and returns only the created comment.
//
// The response carries nothing else from the aggregate, which is what makes
// the optimistic append on the caller's side drift-free. Posting requires a
// logged-in session: the author snapshot in the request comes from it.
func (c *Client) AddComment(ctx context.Context, videoID string, req CommentRequest) (*Comment, error) {
	var comment Comment
	path := fmt.Sprintf("/comments/%s", url.PathEscape(videoID))
	if err := c.do(ctx, http.MethodPost, path, req, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

// EditComment replaces a comment's text and returns the full updated video
// aggregate for wholesale reconciliation. Author-only, server-enforced.
func (c *Client) EditComment(ctx context.Context, videoID, commentID, text string) (*Video, error) {
	var video Video
	path := fmt.Sprintf("/comments/%s/comment/%s", url.PathEscape(videoID), url.PathEscape(commentID))
	body := struct {
		Text string `json:"text"`
	}{Text: text}

	if err := c.do(ctx, http.MethodPut, path, body, &video, true); err != nil {
		return nil, commentError(err, commentID)
	}
	return &video, nil
}

// DeleteComment removes a comment and returns the full updated video
// aggregate. Author-only, server-enforced.
func (c *Client) DeleteComment(ctx context.Context, videoID, commentID string) (*Video, error) {
	var video Video
	path := fmt.Sprintf("/comments/%s/comment/%s", url.PathEscape(videoID), url.PathEscape(commentID))
	if err := c.do(ctx, http.MethodDelete, path, nil, &video, true); err != nil {
		return nil, commentError(err, commentID)
	}
	return &video, nil
}

// commentError narrows a 404 on a comment endpoint to the comment sentinel.
func commentError(err error, commentID string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.NotFound() {
		return fmt.Errorf("%w: %s", shared.ErrCommentNotFound, commentID)
	}
	return err
}
