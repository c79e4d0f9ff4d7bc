package handler

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const chatChannelURL = "https://t.me/+tvWHQ58slElmNmQ1"

// UserSaver records chats in the user registry.
type UserSaver interface {
	Save(chatID int64) error
}

// Authorizer is the force-subscribe gate.
type Authorizer interface {
	IsAuthorized(userID int64) bool
}

// Deliverer resolves a deep-link id and sends its file.
type Deliverer interface {
	Deliver(chatID int64, uniqueID string) error
}

// StartHandler handles /start, with or without a deep-link argument.
type StartHandler struct {
	api               API
	users             UserSaver
	gate              Authorizer
	delivery          Deliverer
	forceSubChannelID int64
}

// NewStartHandler creates a StartHandler.
func NewStartHandler(api API, users UserSaver, gate Authorizer, delivery Deliverer, forceSubChannelID int64) *StartHandler {
	return &StartHandler{
		api:               api,
		users:             users,
		gate:              gate,
		delivery:          delivery,
		forceSubChannelID: forceSubChannelID,
	}
}

func (h *StartHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "start"
}

func (h *StartHandler) Handle(update tgbotapi.Update) error {
	msg := update.Message

	if err := h.users.Save(msg.Chat.ID); err != nil {
		log.Warn().Err(err).Int64("chat_id", msg.Chat.ID).Msg("failed to save user")
	}

	if msg.From != nil && !h.gate.IsAuthorized(msg.From.ID) {
		// The deep-link argument, if any, is dropped; the user has to
		// re-send /start after joining.
		return h.sendJoinPrompt(msg.Chat.ID)
	}

	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		uniqueID := strings.Fields(arg)[0]
		return h.delivery.Deliver(msg.Chat.ID, uniqueID)
	}

	return h.sendWelcome(msg)
}

func (h *StartHandler) sendWelcome(msg *tgbotapi.Message) error {
	name := ""
	if msg.From != nil {
		name = msg.From.FirstName
		if name == "" {
			name = msg.From.UserName
		}
	}
	greeting := "Hello, *" + name + "*! 😉\n\nYou need to Join Our Chat Channel From "

	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Chat Channel", chatChannelURL),
			tgbotapi.NewInlineKeyboardButtonData("Close", "close"),
		),
	)

	_, err := h.api.SendMarkdown(msg.Chat.ID, greeting, &markup)
	return err
}

func (h *StartHandler) sendJoinPrompt(chatID int64) error {
	channelName, err := h.api.ChatUsername(h.forceSubChannelID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to resolve force-subscribe channel username")
	}

	text := "*You need to join our compulsory channel😇 \n\nClick the link below to join 🔗 :*"
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Join Channel", "https://t.me/"+channelName),
		),
	)

	_, err = h.api.SendMarkdown(chatID, text, &markup)
	return err
}
