package reconcile

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tubecli/internal/api"
	"github.com/desertthunder/tubecli/internal/shared"
)

// Platform is the slice of the API client a watch session drives.
type Platform interface {
	Video(ctx context.Context, id string) (*api.Video, error)
	Like(ctx context.Context, id string) error
	Dislike(ctx context.Context, id string) error
	AddComment(ctx context.Context, videoID string, req api.CommentRequest) (*api.Comment, error)
	EditComment(ctx context.Context, videoID, commentID, text string) (*api.Video, error)
	DeleteComment(ctx context.Context, videoID, commentID string) (*api.Video, error)
	RegisterView(ctx context.Context, id string) error
}

var _ Platform = (*api.Client)(nil)

// Identity exposes the signed-in user, if any. Implemented by session.Manager.
type Identity interface {
	Current() (api.User, bool)
}

// Action names a user-initiated mutation for failure messages and phase
// reporting.
type Action string

const (
	ActionLike          Action = "like"
	ActionDislike       Action = "dislike"
	ActionAddComment    Action = "add-comment"
	ActionEditComment   Action = "edit-comment"
	ActionDeleteComment Action = "delete-comment"
)

// Phase is the lifecycle of the most recent mutation.
type Phase int

const (
	Idle Phase = iota
	Dispatching
	Applied
	Failed
)

// fallbacks are the generic failure messages used when the server response
// carries no message of its own.
var fallbacks = map[Action]string{
	ActionLike:          "Could not like video",
	ActionDislike:       "Could not dislike video",
	ActionAddComment:    "Could not post comment",
	ActionEditComment:   "Could not update comment",
	ActionDeleteComment: "Could not delete comment",
}

// FailureMessage returns the user-facing message for a failed mutation: the
// server's own message when the error carries one, the action's generic
// fallback otherwise.
func FailureMessage(action Action, err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg, ok := fallbacks[action]; ok {
		return msg
	}
	return "Something went wrong"
}

// WatchSession owns the aggregate for one video being watched, the pending
// comment edit, and the reconciliation bookkeeping. Safe for use from the
// event loop and the command goroutines it spawns.
type WatchSession struct {
	mu       sync.Mutex
	platform Platform
	identity Identity
	logger   *log.Logger

	videoID    string
	video      *api.Video
	generation uint64

	editTarget string
	draft      string

	phase   Phase
	lastErr error
}

// NewWatchSession creates a session bound to the given platform and identity.
func NewWatchSession(platform Platform, identity Identity, logger *log.Logger) *WatchSession {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &WatchSession{platform: platform, identity: identity, logger: logger}
}

// Load fetches the aggregate for videoID, replacing whatever the session held
// before. Any response still in flight for the previous video is invalidated.
// The view counter registration is fire-and-forget: failures are logged and
// never surfaced.
func (s *WatchSession) Load(ctx context.Context, videoID string) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.videoID = videoID
	s.video = nil
	s.editTarget = ""
	s.draft = ""
	s.phase = Idle
	s.lastErr = nil
	s.mu.Unlock()

	video, err := s.platform.Video(ctx, videoID)
	if err != nil {
		return err
	}

	if err := s.platform.RegisterView(ctx, videoID); err != nil {
		s.logger.Warn("failed to register view", "video", videoID, "error", err)
	}

	s.replace(gen, video)
	return nil
}

// Reload refetches the current aggregate and replaces it wholesale.
func (s *WatchSession) Reload(ctx context.Context) error {
	s.mu.Lock()
	gen := s.generation
	videoID := s.videoID
	s.mu.Unlock()

	if videoID == "" {
		return shared.ErrVideoNotFound
	}

	video, err := s.platform.Video(ctx, videoID)
	if err != nil {
		return err
	}
	s.replace(gen, video)
	return nil
}

// Video returns the current aggregate, or false when none is loaded.
func (s *WatchSession) Video() (*api.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.video, s.video != nil
}

// Phase returns the lifecycle state of the most recent mutation.
func (s *WatchSession) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Like toggles the viewer's like and reconciles by refetching the aggregate.
// The like and dislike sets are mutually exclusive server-side; the refetch
// is what keeps both membership sets honest locally.
func (s *WatchSession) Like(ctx context.Context) error {
	return s.react(ctx, ActionLike, s.platform.Like)
}

// Dislike toggles the viewer's dislike and reconciles by refetching.
func (s *WatchSession) Dislike(ctx context.Context) error {
	return s.react(ctx, ActionDislike, s.platform.Dislike)
}

func (s *WatchSession) react(ctx context.Context, action Action, call func(context.Context, string) error) error {
	s.mu.Lock()
	if _, ok := s.identity.Current(); !ok {
		s.mu.Unlock()
		return shared.ErrLoginRequired
	}
	gen := s.generation
	videoID := s.videoID
	s.phase = Dispatching
	s.mu.Unlock()

	if err := call(ctx, videoID); err != nil {
		s.fail(err)
		return err
	}

	video, err := s.platform.Video(ctx, videoID)
	if err != nil {
		s.fail(err)
		return err
	}

	s.replace(gen, video)
	s.applied(action)
	return nil
}

// AddComment posts draft text as a new comment and appends the server's copy
// to the aggregate. The aggregate is otherwise untouched: the response
// carries only the created comment.
func (s *WatchSession) AddComment(ctx context.Context, text string) (*api.Comment, error) {
	s.mu.Lock()
	user, ok := s.identity.Current()
	if !ok {
		s.mu.Unlock()
		return nil, shared.ErrLoginRequired
	}
	cleaned := shared.CleanText(text)
	if cleaned == "" {
		s.mu.Unlock()
		return nil, shared.ErrEmptyComment
	}
	gen := s.generation
	videoID := s.videoID
	s.phase = Dispatching
	s.mu.Unlock()

	req := api.CommentRequest{
		UserID:   user.UserID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Text:     cleaned,
	}

	comment, err := s.platform.AddComment(ctx, videoID, req)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.mu.Lock()
	if gen == s.generation && s.video != nil {
		s.video.Comments = append(s.video.Comments, *comment)
	} else {
		s.logger.Debug("discarded stale comment response", "video", videoID)
	}
	s.phase = Applied
	s.lastErr = nil
	s.mu.Unlock()
	return comment, nil
}

// BeginEdit puts commentID into edit mode with its current text as the draft.
// At most one comment is in edit mode; switching targets discards the
// previous draft silently.
func (s *WatchSession) BeginEdit(commentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.editTarget = ""
	s.draft = ""
	if s.video == nil {
		return
	}
	for _, c := range s.video.Comments {
		if c.CommentID == commentID {
			s.editTarget = commentID
			s.draft = c.Text
			return
		}
	}
}

// SetDraft updates the pending edit text.
func (s *WatchSession) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editTarget != "" {
		s.draft = text
	}
}

// CancelEdit leaves edit mode without saving.
func (s *WatchSession) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editTarget = ""
	s.draft = ""
}

// SubmitEdit sends the draft to the platform and replaces the aggregate with
// the returned copy. Edit mode ends only on success; a failed submit keeps
// the draft for retry.
func (s *WatchSession) SubmitEdit(ctx context.Context) error {
	s.mu.Lock()
	if _, ok := s.identity.Current(); !ok {
		s.mu.Unlock()
		return shared.ErrLoginRequired
	}
	if s.editTarget == "" {
		s.mu.Unlock()
		return shared.ErrCommentNotFound
	}
	cleaned := shared.CleanText(s.draft)
	if cleaned == "" {
		s.mu.Unlock()
		return shared.ErrEmptyComment
	}
	gen := s.generation
	videoID := s.videoID
	commentID := s.editTarget
	s.phase = Dispatching
	s.mu.Unlock()

	video, err := s.platform.EditComment(ctx, videoID, commentID, cleaned)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	if gen == s.generation {
		s.video = video
		s.editTarget = ""
		s.draft = ""
	}
	s.phase = Applied
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// DeleteComment removes a comment and replaces the aggregate with the
// server's copy. A pending edit on the deleted comment is discarded.
func (s *WatchSession) DeleteComment(ctx context.Context, commentID string) error {
	s.mu.Lock()
	if _, ok := s.identity.Current(); !ok {
		s.mu.Unlock()
		return shared.ErrLoginRequired
	}
	gen := s.generation
	videoID := s.videoID
	s.phase = Dispatching
	s.mu.Unlock()

	video, err := s.platform.DeleteComment(ctx, videoID, commentID)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	if gen == s.generation {
		s.video = video
		if s.editTarget == commentID {
			s.editTarget = ""
			s.draft = ""
		}
	}
	s.phase = Applied
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// replace installs the aggregate if the session has not moved to a newer load.
func (s *WatchSession) replace(gen uint64, video *api.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("discarded stale aggregate", "video", video.VideoID)
		return
	}
	s.video = video
}

func (s *WatchSession) applied(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = Applied
	s.lastErr = nil
	s.logger.Debug("mutation applied", "action", string(action))
}

func (s *WatchSession) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = Failed
	s.lastErr = err
}
