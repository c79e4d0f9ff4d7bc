package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Migrate runs all database migrations
func (db *DB) Migrate() error {
	log.Info().Msg("running database migrations")

	migrations := []string{
		// Users table: one row per chat that ever talked to the bot
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_chat_id ON users(chat_id)`,

		// File storage table: deep-link id to Telegram file reference
		`CREATE TABLE IF NOT EXISTS file_storage (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			unique_id TEXT NOT NULL UNIQUE,
			file_id TEXT NOT NULL,
			file_type TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_file_storage_unique_id ON file_storage(unique_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}

	log.Info().Msg("migrations completed")
	return nil
}
