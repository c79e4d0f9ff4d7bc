package models

import "time"

// User represents a chat that has interacted with the bot
type User struct {
	ID        int64
	ChatID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
