package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tubecli/internal/models"
	"github.com/desertthunder/tubecli/internal/shared"
)

// HistoryRepository implements [models.Repository] for [models.HistoryEntry] persistence.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new history entry with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	sequence, err := NextSequence(r.db, "history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO history (id, sequence, video_id, title, uploader, watched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, entry.VideoID(), entry.Title(), entry.Uploader(), entry.WatchedAt(), entry.CreatedAt(), entry.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Get retrieves a history entry by ID, excluding soft-deleted entries
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, video_id, title, uploader, watched_at, updated_at, deleted_at
		FROM history
		WHERE id = ? AND deleted_at IS NULL
	`

	entry, err := r.scan(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("history entry not found: %s", id)
	}
	return entry, err
}

// Update modifies an existing history entry
func (r *HistoryRepository) Update(entry *models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE history
		SET title = ?, uploader = ?, watched_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, entry.Title(), entry.Uploader(), entry.WatchedAt(), now, entry.ID())
	if err != nil {
		return fmt.Errorf("failed to update history entry: %w", err)
	}

	return requireAffected(result, entry.ID())
}

// Delete soft-deletes a history entry by ID
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE history SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return requireAffected(result, id)
}

// Clear soft-deletes all history entries.
func (r *HistoryRepository) Clear() error {
	if _, err := r.db.Exec("UPDATE history SET deleted_at = ? WHERE deleted_at IS NULL", time.Now()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// List retrieves history entries matching the given criteria, most recent
// first, excluding soft-deleted entries
func (r *HistoryRepository) List(criteria map[string]any) ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, video_id, title, uploader, watched_at, updated_at, deleted_at
		FROM history
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if videoID, ok := criteria["video_id"].(string); ok && videoID != "" {
		query += " AND video_id = ?"
		args = append(args, videoID)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

func (r *HistoryRepository) scan(row rowScanner) (*models.HistoryEntry, error) {
	var (
		id        string
		sequence  int
		videoID   string
		title     string
		uploader  string
		watchedAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &videoID, &title, &uploader, &watchedAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	entry := models.NewHistoryEntry(sequence, videoID, title, uploader)
	entry.SetID(id)
	entry.SetUpdatedAt(updatedAt)
	entry.SetWatchedAt(watchedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}
