package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// CloseHandler handles the "close" callback button: it removes the message
// carrying the button and, best effort, the message right before it.
type CloseHandler struct {
	api API
}

// NewCloseHandler creates a CloseHandler.
func NewCloseHandler(api API) *CloseHandler {
	return &CloseHandler{api: api}
}

func (h *CloseHandler) CanHandle(update tgbotapi.Update) bool {
	return update.CallbackQuery != nil && update.CallbackQuery.Data == "close"
}

func (h *CloseHandler) Handle(update tgbotapi.Update) error {
	cb := update.CallbackQuery
	if cb.Message == nil {
		return nil
	}

	chatID := cb.Message.Chat.ID
	if err := h.api.DeleteMessage(chatID, cb.Message.MessageID); err != nil {
		log.Warn().Err(err).Msg("failed to delete message with buttons")
	}

	// The preceding message may already be gone or undeletable; both are
	// fine.
	if err := h.api.DeleteMessage(chatID, cb.Message.MessageID-1); err != nil {
		log.Debug().Err(err).Msg("skipping deletion of previous message")
	}
	return nil
}
