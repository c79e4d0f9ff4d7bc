package handler

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/artur/filelinkbot/internal/config"
	"github.com/artur/filelinkbot/internal/database/models"
)

// FileSaver persists file records.
type FileSaver interface {
	Save(rec *models.FileRecord) error
}

// IDGenerator issues unused link identifiers.
type IDGenerator interface {
	Generate() string
}

// UploadHandler stores media an admin posts in the private group and replies
// with a shareable deep link.
type UploadHandler struct {
	api   API
	files FileSaver
	ids   IDGenerator
	cfg   *config.Config
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(api API, files FileSaver, ids IDGenerator, cfg *config.Config) *UploadHandler {
	return &UploadHandler{api: api, files: files, ids: ids, cfg: cfg}
}

func (h *UploadHandler) CanHandle(update tgbotapi.Update) bool {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return false
	}
	if msg.Chat.ID != h.cfg.PrivateGroupID || !h.cfg.IsAdmin(msg.From.ID) {
		return false
	}
	_, _, ok := classifyMedia(msg)
	return ok
}

func (h *UploadHandler) Handle(update tgbotapi.Update) error {
	msg := update.Message

	fileID, kind, ok := classifyMedia(msg)
	if !ok {
		h.reply(msg.Chat.ID, "Failed to process the file.")
		return nil
	}

	uniqueID := h.ids.Generate()

	// A persistence failure is logged but the link is still issued; see the
	// delivery path for the consequence.
	if err := h.files.Save(&models.FileRecord{
		UniqueID: uniqueID,
		FileID:   fileID,
		FileType: kind,
	}); err != nil {
		log.Error().Err(err).Str("unique_id", uniqueID).Msg("failed to save file record")
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s", h.api.Username(), uniqueID)

	processing, err := h.api.SendHTML(msg.Chat.ID, "<b>⚙️ Processing link...</b>")
	if err != nil {
		log.Warn().Err(err).Msg("failed to send processing message")
		h.reply(msg.Chat.ID, "An error occurred while processing the file.")
		return nil
	}

	name := msg.From.FirstName
	confirmation := fmt.Sprintf(
		"<b>%s, your file is stored!</b>\n\n<code>Use this link to access it 🔗 :\n||%s||\n\nLeave Reaction🤪😇</code>\n\n%s",
		name, link, link,
	)
	if err := h.api.EditHTML(msg.Chat.ID, processing.MessageID, confirmation); err != nil {
		log.Warn().Err(err).Msg("failed to edit processing message")
		h.reply(msg.Chat.ID, "An error occurred while processing the file.")
	}
	return nil
}

func (h *UploadHandler) reply(chatID int64, text string) {
	if _, err := h.api.SendText(chatID, text); err != nil {
		log.Warn().Err(err).Msg("failed to send upload reply")
	}
}

// classifyMedia reduces a message to its single media attachment. The five
// supported kinds are checked in a fixed order; a message carrying none of
// them is not an upload.
func classifyMedia(msg *tgbotapi.Message) (string, models.ContentKind, bool) {
	switch {
	case len(msg.Photo) > 0:
		// Telegram sends multiple sizes; keep the largest.
		return msg.Photo[len(msg.Photo)-1].FileID, models.KindPhoto, true
	case msg.Video != nil:
		return msg.Video.FileID, models.KindVideo, true
	case msg.Document != nil:
		return msg.Document.FileID, models.KindDocument, true
	case msg.Audio != nil:
		return msg.Audio.FileID, models.KindAudio, true
	case msg.Voice != nil:
		return msg.Voice.FileID, models.KindVoice, true
	}
	return "", "", false
}
