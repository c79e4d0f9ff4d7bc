package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the Telegram surface the handlers depend on.
type API interface {
	SendText(chatID int64, text string) (tgbotapi.Message, error)
	SendHTML(chatID int64, text string) (tgbotapi.Message, error)
	SendMarkdown(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error)
	EditHTML(chatID int64, messageID int, text string) error
	DeleteMessage(chatID int64, messageID int) error
	ForwardMessage(toChatID, fromChatID int64, messageID int) error
	ChatUsername(chatID int64) (string, error)
	Username() string
}
