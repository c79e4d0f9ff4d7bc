// Package broadcast fans a message out to every registered user.
package broadcast

import (
	"fmt"

	"github.com/artur/filelinkbot/internal/telegram"
)

// API is the subset of the Telegram client the engine uses.
type API interface {
	BroadcastText(chatID int64, text string) error
	BroadcastPhoto(chatID int64, fileID, caption string) error
}

// Registry lists broadcast recipients.
type Registry interface {
	ListChatIDs() ([]int64, error)
}

// Payload is either a text message or a single photo with caption.
type Payload struct {
	Text        string
	PhotoFileID string
	Caption     string
}

// Report summarizes a completed fan-out.
type Report struct {
	Sent    int
	Blocked int
}

// Engine sends a payload to every registered chat.
type Engine struct {
	api   API
	users Registry
}

// New creates a broadcast Engine.
func New(api API, users Registry) *Engine {
	return &Engine{api: api, users: users}
}

// Broadcast sends the payload to every chat in the registry. A recipient who
// has blocked the bot is counted and skipped; the user record stays. Any
// other failure aborts the remaining fan-out and is returned with the
// partial report.
func (e *Engine) Broadcast(p Payload) (Report, error) {
	var report Report

	ids, err := e.users.ListChatIDs()
	if err != nil {
		return report, fmt.Errorf("failed to list recipients: %w", err)
	}

	for _, chatID := range ids {
		var sendErr error
		if p.PhotoFileID != "" {
			sendErr = e.api.BroadcastPhoto(chatID, p.PhotoFileID, p.Caption)
		} else {
			sendErr = e.api.BroadcastText(chatID, p.Text)
		}

		if sendErr == nil {
			report.Sent++
			continue
		}
		if telegram.Blocked(sendErr) {
			report.Blocked++
			continue
		}
		return report, fmt.Errorf("failed to send to %d: %w", chatID, sendErr)
	}

	return report, nil
}
