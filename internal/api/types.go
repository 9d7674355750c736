package api

// Video is the aggregate root for a platform video: metadata plus the
// embedded comment sequence and like/dislike membership sets. The client
// treats it as one consistency unit; derived counts are always recomputed
// from the slices, never cached.
type Video struct {
	VideoID        string    `json:"videoId"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category"`
	ChannelID      string    `json:"channelId"`
	Uploader       string    `json:"uploader"`
	UploaderAvatar string    `json:"uploaderAvatar,omitempty"`
	VideoURL       string    `json:"videoUrl"`
	ThumbnailURL   string    `json:"thumbnailUrl,omitempty"`
	Views          int       `json:"views"`
	Likes          []string  `json:"likes"`
	Dislikes       []string  `json:"dislikes"`
	Comments       []Comment `json:"comments"`
}

// Comment is a child entity of exactly one Video. Author identity fields are
// snapshots taken at creation time; later profile edits do not rewrite them.
type Comment struct {
	CommentID string `json:"commentId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar,omitempty"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// User is the platform identity snapshot returned by auth and profile calls.
type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Banner   string `json:"banner,omitempty"`
}

// AuthResponse is the token + user pair issued by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UploadRequest carries the metadata for creating a video.
type UploadRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	ChannelID   string `json:"channelId"`
	VideoURL    string `json:"videoUrl"`
}

// VideoUpdate carries owner-editable metadata for an existing video.
type VideoUpdate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

// CommentRequest carries a new comment with the author snapshot.
type CommentRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
	Text     string `json:"text"`
}

// LikeCount returns the live size of the like set.
func (v *Video) LikeCount() int { return len(v.Likes) }

// DislikeCount returns the live size of the dislike set.
func (v *Video) DislikeCount() int { return len(v.Dislikes) }

// CommentCount returns the live length of the comment sequence.
func (v *Video) CommentCount() int { return len(v.Comments) }

// LikedBy reports whether userID is in the like set.
func (v *Video) LikedBy(userID string) bool { return contains(v.Likes, userID) }

// DislikedBy reports whether userID is in the dislike set.
func (v *Video) DislikedBy(userID string) bool { return contains(v.Dislikes, userID) }

// DisplayDescription returns the description or a fallback when the server
// omitted the field.
func (v *Video) DisplayDescription() string {
	if v.Description == "" {
		return "No description provided"
	}
	return v.Description
}

// DisplayUploader returns the uploader name or a fallback when absent.
func (v *Video) DisplayUploader() string {
	if v.Uploader == "" {
		return "Unknown channel"
	}
	return v.Uploader
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
