package handler_test

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fakeAPI records every outbound call the handlers make.
type fakeAPI struct {
	texts     []string
	htmls     []string
	markdowns []string
	markups   []*tgbotapi.InlineKeyboardMarkup
	edits     []string
	deleted   []int
	forwards  []int64
	fileIDs   []string
	fileKinds []string
	username  string
	chatName  string
	nextMsgID int
}

func (f *fakeAPI) SendFile(chatID int64, fileID, fileType string) error {
	f.fileIDs = append(f.fileIDs, fileID)
	f.fileKinds = append(f.fileKinds, fileType)
	return nil
}

func (f *fakeAPI) SendText(chatID int64, text string) (tgbotapi.Message, error) {
	f.texts = append(f.texts, text)
	f.nextMsgID++
	return tgbotapi.Message{MessageID: f.nextMsgID}, nil
}

func (f *fakeAPI) SendHTML(chatID int64, text string) (tgbotapi.Message, error) {
	f.htmls = append(f.htmls, text)
	f.nextMsgID++
	return tgbotapi.Message{MessageID: f.nextMsgID}, nil
}

func (f *fakeAPI) SendMarkdown(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) (tgbotapi.Message, error) {
	f.markdowns = append(f.markdowns, text)
	f.markups = append(f.markups, markup)
	f.nextMsgID++
	return tgbotapi.Message{MessageID: f.nextMsgID}, nil
}

func (f *fakeAPI) EditHTML(chatID int64, messageID int, text string) error {
	f.edits = append(f.edits, text)
	return nil
}

func (f *fakeAPI) DeleteMessage(chatID int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeAPI) ForwardMessage(toChatID, fromChatID int64, messageID int) error {
	f.forwards = append(f.forwards, toChatID)
	return nil
}

func (f *fakeAPI) ChatUsername(chatID int64) (string, error) {
	return f.chatName, nil
}

func (f *fakeAPI) Username() string {
	if f.username == "" {
		return "testbot"
	}
	return f.username
}

type fakeUsers struct {
	saved []int64
}

func (f *fakeUsers) Save(chatID int64) error {
	f.saved = append(f.saved, chatID)
	return nil
}

type fakeGate struct {
	authorized bool
}

func (f *fakeGate) IsAuthorized(userID int64) bool {
	return f.authorized
}

type fakeDeliverer struct {
	chatIDs   []int64
	uniqueIDs []string
}

func (f *fakeDeliverer) Deliver(chatID int64, uniqueID string) error {
	f.chatIDs = append(f.chatIDs, chatID)
	f.uniqueIDs = append(f.uniqueIDs, uniqueID)
	return nil
}

// commandMessage builds a message whose entities mark the leading command,
// the way the platform does for real updates.
func commandMessage(chatID, userID int64, text string) *tgbotapi.Message {
	cmdLen := len(text)
	if i := strings.Index(text, " "); i != -1 {
		cmdLen = i
	}
	return &tgbotapi.Message{
		MessageID: 100,
		From:      &tgbotapi.User{ID: userID, FirstName: "Test"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: cmdLen},
		},
	}
}
