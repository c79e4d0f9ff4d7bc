package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// HelpHandler handles /help.
type HelpHandler struct {
	api API
}

// NewHelpHandler creates a HelpHandler.
func NewHelpHandler(api API) *HelpHandler {
	return &HelpHandler{api: api}
}

func (h *HelpHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "help"
}

func (h *HelpHandler) Handle(update tgbotapi.Update) error {
	_, err := h.api.SendHTML(update.Message.Chat.ID, "<b>Join the posting channel \n/start for more links!</b>")
	return err
}
