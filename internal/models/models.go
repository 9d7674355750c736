package models

import (
	"time"

	"github.com/desertthunder/tubecli/internal/shared"
)

// Model defines the base interface for all persistent models in the client's local store.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// base carries the lifecycle fields common to all persistent entities.
type base struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func (b *base) ID() string                { return b.id }
func (b *base) SetID(id string)           { b.id = id }
func (b *base) Sequence() int             { return b.sequence }
func (b *base) CreatedAt() time.Time      { return b.createdAt }
func (b *base) UpdatedAt() time.Time      { return b.updatedAt }
func (b *base) SetUpdatedAt(t time.Time)  { b.updatedAt = t }
func (b *base) DeletedAt() *time.Time     { return b.deletedAt }
func (b *base) SetDeletedAt(t *time.Time) { b.deletedAt = t }

// Session is the persisted pairing of a user identity snapshot and a bearer
// token. The two are written and cleared together; a Session row never holds
// one without the other.
type Session struct {
	base
	userID   string
	username string
	avatar   string
	token    string
}

// NewSession creates a session entity for the given identity and credential.
func NewSession(sequence int, userID, username, avatar, token string) *Session {
	now := time.Now()
	return &Session{
		base:     base{sequence: sequence, createdAt: now, updatedAt: now},
		userID:   userID,
		username: username,
		avatar:   avatar,
		token:    token,
	}
}

func (s *Session) UserID() string   { return s.userID }
func (s *Session) Username() string { return s.username }
func (s *Session) Avatar() string   { return s.avatar }
func (s *Session) Token() string    { return s.token }

// Validate checks that the identity and credential are both present.
func (s *Session) Validate() error {
	if s.userID == "" || s.username == "" {
		return shared.ErrInvalidInput
	}
	if s.token == "" {
		return shared.ErrNotAuthenticated
	}
	return nil
}

// HistoryEntry records a locally watched video.
type HistoryEntry struct {
	base
	videoID   string
	title     string
	uploader  string
	watchedAt time.Time
}

// NewHistoryEntry creates a history entry stamped with the current time.
func NewHistoryEntry(sequence int, videoID, title, uploader string) *HistoryEntry {
	now := time.Now()
	return &HistoryEntry{
		base:      base{sequence: sequence, createdAt: now, updatedAt: now},
		videoID:   videoID,
		title:     title,
		uploader:  uploader,
		watchedAt: now,
	}
}

func (h *HistoryEntry) VideoID() string      { return h.videoID }
func (h *HistoryEntry) Title() string        { return h.title }
func (h *HistoryEntry) Uploader() string     { return h.uploader }
func (h *HistoryEntry) WatchedAt() time.Time { return h.watchedAt }

func (h *HistoryEntry) SetWatchedAt(t time.Time) { h.watchedAt = t }

// Validate checks that the entry names a video.
func (h *HistoryEntry) Validate() error {
	if h.videoID == "" || h.title == "" {
		return shared.ErrInvalidInput
	}
	return nil
}
