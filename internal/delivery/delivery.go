// Package delivery resolves a deep-link id to stored media and re-sends it.
package delivery

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/artur/filelinkbot/internal/database/models"
)

const waitMessage = "<b>⏳ Please Wait...</b>"

// API is the subset of the Telegram client the engine uses.
type API interface {
	SendText(chatID int64, text string) (tgbotapi.Message, error)
	SendHTML(chatID int64, text string) (tgbotapi.Message, error)
	SendFile(chatID int64, fileID, fileType string) error
	DeleteMessage(chatID int64, messageID int) error
}

// FileStore looks up stored file records.
type FileStore interface {
	Get(uniqueID string) (*models.FileRecord, error)
}

// Engine sends stored files to requesting chats.
type Engine struct {
	api   API
	files FileStore
}

// New creates a delivery Engine.
func New(api API, files FileStore) *Engine {
	return &Engine{api: api, files: files}
}

// Deliver looks up uniqueID and re-sends its media to chatID. Every failure
// is reported to the user as a plain message; nothing propagates.
func (e *Engine) Deliver(chatID int64, uniqueID string) error {
	rec, err := e.files.Get(uniqueID)
	if err != nil {
		// Indistinguishable from "not found" for the user.
		log.Error().Err(err).Str("unique_id", uniqueID).Msg("failed to load file record")
		rec = nil
	}
	if rec == nil {
		e.notify(chatID, "File not found. It might have been deleted or the link is incorrect.")
		return nil
	}

	if rec.FileID == "" {
		e.notify(chatID, "File ID is not available. The file cannot be sent.")
		return nil
	}
	if !rec.FileType.Valid() {
		e.notify(chatID, "Unsupported file type")
		return nil
	}

	status, err := e.api.SendHTML(chatID, waitMessage)
	if err != nil {
		e.notify(chatID, fmt.Sprintf("An error occurred while sending the file: %v", err))
		return nil
	}

	sendErr := e.api.SendFile(chatID, rec.FileID, string(rec.FileType))

	// The wait message goes away on both the success and failure path.
	if err := e.api.DeleteMessage(chatID, status.MessageID); err != nil {
		log.Warn().Err(err).Msg("failed to delete wait message")
	}

	if sendErr != nil {
		e.notify(chatID, fmt.Sprintf("An error occurred while sending the file: %v", sendErr))
	}
	return nil
}

func (e *Engine) notify(chatID int64, text string) {
	if _, err := e.api.SendText(chatID, text); err != nil {
		log.Warn().Err(err).Int64("chat_id", chatID).Msg("failed to send delivery notice")
	}
}
