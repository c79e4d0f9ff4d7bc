// Package telegram wraps the bot API with the small set of calls the rest of
// the application needs, classifying failures into typed errors.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Client is a thin wrapper around the Telegram bot API.
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient authenticates against the Telegram API.
func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log.Info().Str("username", api.Self.UserName).Msg("authorized on telegram")
	return &Client{api: api}, nil
}

// Username returns the bot's own username, used to build deep links.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// SendText sends a plain text message.
func (c *Client) SendText(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := c.api.Send(msg)
	return sent, classify(err)
}

// SendHTML sends an HTML-formatted message.
func (c *Client) SendHTML(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	sent, err := c.api.Send(msg)
	return sent, classify(err)
}

// SendMarkdown sends a Markdown-formatted message with an optional inline
// keyboard.
func (c *Client) SendMarkdown(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	sent, err := c.api.Send(msg)
	return sent, classify(err)
}

// EditHTML replaces the text of an already-sent message.
func (c *Client) EditHTML(chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := c.api.Request(edit)
	return classify(err)
}

// DeleteMessage removes a message from a chat.
func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return classify(err)
}

// ForwardMessage forwards a message verbatim to another chat.
func (c *Client) ForwardMessage(toChatID, fromChatID int64, messageID int) error {
	_, err := c.api.Request(tgbotapi.NewForward(toChatID, fromChatID, messageID))
	return classify(err)
}

// MemberStatus returns the user's membership status in the given chat.
func (c *Client) MemberStatus(chatID, userID int64) (string, error) {
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", classify(err)
	}
	return member.Status, nil
}

// ChatUsername returns the public username of a chat or channel.
func (c *Client) ChatUsername(chatID int64) (string, error) {
	chat, err := c.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return "", classify(err)
	}
	return chat.UserName, nil
}

// The library's typed configs predate protect_content, so the protected
// sends below build their request parameters directly.

// SendFile re-sends stored media by file id with forward/save protection.
func (c *Client) SendFile(chatID int64, fileID, fileType string) error {
	var endpoint, field string
	switch fileType {
	case "photo":
		endpoint, field = "sendPhoto", "photo"
	case "video":
		endpoint, field = "sendVideo", "video"
	case "document":
		endpoint, field = "sendDocument", "document"
	case "audio":
		endpoint, field = "sendAudio", "audio"
	case "voice":
		endpoint, field = "sendVoice", "voice"
	default:
		return fmt.Errorf("unsupported file type %q", fileType)
	}

	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", chatID)
	params[field] = fileID
	params.AddBool("protect_content", true)

	_, err := c.api.MakeRequest(endpoint, params)
	return classify(err)
}

// BroadcastText sends protected HTML text to a broadcast recipient.
func (c *Client) BroadcastText(chatID int64, text string) error {
	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", chatID)
	params["text"] = text
	params.AddNonEmpty("parse_mode", tgbotapi.ModeHTML)
	params.AddBool("protect_content", true)

	_, err := c.api.MakeRequest("sendMessage", params)
	return classify(err)
}

// BroadcastPhoto sends a protected photo with caption to a broadcast
// recipient.
func (c *Client) BroadcastPhoto(chatID int64, fileID, caption string) error {
	params := make(tgbotapi.Params)
	params.AddNonZero64("chat_id", chatID)
	params["photo"] = fileID
	params.AddNonEmpty("caption", caption)
	params.AddNonEmpty("parse_mode", tgbotapi.ModeHTML)
	params.AddBool("protect_content", true)

	_, err := c.api.MakeRequest("sendPhoto", params)
	return classify(err)
}
