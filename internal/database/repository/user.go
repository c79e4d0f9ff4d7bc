package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// UserRepository handles user data persistence
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save records a chat id. The write is an idempotent upsert: saving the same
// chat twice keeps a single row.
func (r *UserRepository) Save(chatID int64) error {
	now := time.Now()

	query := `
		INSERT INTO users (chat_id, created_at, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, chatID, now, now); err != nil {
		return fmt.Errorf("failed to save user %d: %w", chatID, err)
	}
	return nil
}

// ListChatIDs returns every known chat id. Order is unspecified.
func (r *UserRepository) ListChatIDs() ([]int64, error) {
	rows, err := r.db.Query("SELECT chat_id FROM users")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chat id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
