package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tubecli/internal/models"
	"github.com/desertthunder/tubecli/internal/shared"
)

// SessionRepository implements [models.Repository] for [models.Session] persistence.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session into the database with generated ID and sequence
func (r *SessionRepository) Create(session *models.Session) error {
	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	session.SetID(id)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sessions (id, sequence, user_id, username, avatar, token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, session.UserID(), session.Username(), session.Avatar(), session.Token(), session.CreatedAt(), session.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions
func (r *SessionRepository) Get(id string) (*models.Session, error) {
	query := `
		SELECT id, sequence, user_id, username, avatar, token, updated_at, deleted_at
		FROM sessions
		WHERE id = ? AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRow(query, id))
}

// Latest retrieves the most recently saved session, or
// [shared.ErrSessionNotFound] when none is stored.
func (r *SessionRepository) Latest() (*models.Session, error) {
	query := `
		SELECT id, sequence, user_id, username, avatar, token, updated_at, deleted_at
		FROM sessions
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRow(query))
}

// Update modifies an existing session in the database
func (r *SessionRepository) Update(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	session.SetUpdatedAt(now)

	query := `
		UPDATE sessions
		SET user_id = ?, username = ?, avatar = ?, token = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, session.UserID(), session.Username(), session.Avatar(), session.Token(), now, session.ID())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return requireAffected(result, session.ID())
}

// Delete soft-deletes a session by ID
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE sessions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return requireAffected(result, id)
}

// Purge soft-deletes every stored session. Logout clears the user and token
// pair together; purging rather than deleting one row keeps stale rows from
// resurfacing as the "latest" session.
func (r *SessionRepository) Purge() error {
	if _, err := r.db.Exec("UPDATE sessions SET deleted_at = ? WHERE deleted_at IS NULL", time.Now()); err != nil {
		return fmt.Errorf("failed to purge sessions: %w", err)
	}
	return nil
}

// List retrieves all sessions matching the given criteria, excluding soft-deleted sessions
func (r *SessionRepository) List(criteria map[string]any) ([]*models.Session, error) {
	query := `
		SELECT id, sequence, user_id, username, avatar, token, updated_at, deleted_at
		FROM sessions
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SessionRepository) scanOne(row *sql.Row) (*models.Session, error) {
	session, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrSessionNotFound
	}
	return session, err
}

func (r *SessionRepository) scan(row rowScanner) (*models.Session, error) {
	var (
		id        string
		sequence  int
		userID    string
		username  string
		avatar    string
		token     string
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &userID, &username, &avatar, &token, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	session := models.NewSession(sequence, userID, username, avatar, token)
	session.SetID(id)
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}

	return session, nil
}

// requireAffected converts a zero-row result into a not-found error.
func requireAffected(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("record not found or already deleted: %s", id)
	}
	return nil
}
