package storage

import (
	"context"
	"time"
)

// UnlockRepository is the SQLite-backed unlock store.
type UnlockRepository struct {
	db *DB
}

// NewUnlockRepository creates a new unlock repository.
func NewUnlockRepository(db *DB) *UnlockRepository {
	return &UnlockRepository{db: db}
}

// Load returns all unlocked identifiers in unlock order.
func (r *UnlockRepository) Load(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM unlocks ORDER BY unlocked_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// IsUnlocked reports whether the identifier has been unlocked.
func (r *UnlockRepository) IsUnlocked(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM unlocks WHERE id = ?
	`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkUnlocked records the identifier as unlocked. Repeated calls with the
// same identifier leave a single row.
func (r *UnlockRepository) MarkUnlocked(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO unlocks (id, unlocked_at) VALUES (?, ?)
	`, id, time.Now().UTC())
	return err
}

// Close closes the underlying database.
func (r *UnlockRepository) Close() error {
	return r.db.Close()
}
