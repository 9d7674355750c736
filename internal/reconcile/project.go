package reconcile

// ViewModel is the render-ready projection of the loaded aggregate plus the
// session's edit state. All counts are computed live from the slices; nothing
// here is cached between projections.
type ViewModel struct {
	VideoID      string
	Title        string
	Description  string
	Category     string
	Uploader     string
	VideoURL     string
	ThumbnailURL string

	Views        int
	LikeCount    int
	DislikeCount int
	CommentCount int

	Liked       bool
	Disliked    bool
	CanInteract bool

	Comments []CommentView
}

// CommentView is one comment as the viewer sees it.
type CommentView struct {
	CommentID string
	UserID    string
	Username  string
	Avatar    string
	Text      string
	Timestamp string

	CanEdit bool
	InEdit  bool
	Draft   string
}

// Project derives the view model for the current viewer. The zero ViewModel
// is returned when no aggregate is loaded.
func (s *WatchSession) Project() ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.video == nil {
		return ViewModel{}
	}

	user, authenticated := s.identity.Current()

	vm := ViewModel{
		VideoID:      s.video.VideoID,
		Title:        s.video.Title,
		Description:  s.video.DisplayDescription(),
		Category:     s.video.Category,
		Uploader:     s.video.DisplayUploader(),
		VideoURL:     s.video.VideoURL,
		ThumbnailURL: s.video.ThumbnailURL,
		Views:        s.video.Views,
		LikeCount:    s.video.LikeCount(),
		DislikeCount: s.video.DislikeCount(),
		CommentCount: s.video.CommentCount(),
		CanInteract:  authenticated,
	}
	if authenticated {
		vm.Liked = s.video.LikedBy(user.UserID)
		vm.Disliked = s.video.DislikedBy(user.UserID)
	}

	vm.Comments = make([]CommentView, 0, len(s.video.Comments))
	for _, c := range s.video.Comments {
		cv := CommentView{
			CommentID: c.CommentID,
			UserID:    c.UserID,
			Username:  c.Username,
			Avatar:    c.Avatar,
			Text:      c.Text,
			Timestamp: c.Timestamp,
			CanEdit:   authenticated && c.UserID == user.UserID,
		}
		if s.editTarget == c.CommentID {
			cv.InEdit = true
			cv.Draft = s.draft
		}
		vm.Comments = append(vm.Comments, cv)
	}
	return vm
}
