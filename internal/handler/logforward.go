package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// LogForwardHandler mirrors any message no other handler claimed to the log
// channel. It must be registered last.
type LogForwardHandler struct {
	api          API
	logChannelID int64
}

// NewLogForwardHandler creates a LogForwardHandler.
func NewLogForwardHandler(api API, logChannelID int64) *LogForwardHandler {
	return &LogForwardHandler{api: api, logChannelID: logChannelID}
}

func (h *LogForwardHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil
}

func (h *LogForwardHandler) Handle(update tgbotapi.Update) error {
	msg := update.Message
	if err := h.api.ForwardMessage(h.logChannelID, msg.Chat.ID, msg.MessageID); err != nil {
		log.Warn().Err(err).Msg("failed to forward message to log channel")
	}
	return nil
}
