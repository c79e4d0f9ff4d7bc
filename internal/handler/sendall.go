package handler

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/artur/filelinkbot/internal/broadcast"
	"github.com/artur/filelinkbot/internal/config"
)

// SendAllHandler handles /sendall from an admin inside the private group.
// The command itself only records a pending broadcast; the admin's next
// message supplies the payload.
type SendAllHandler struct {
	api     API
	pending *broadcast.PendingTable
	cfg     *config.Config
}

// NewSendAllHandler creates a SendAllHandler.
func NewSendAllHandler(api API, pending *broadcast.PendingTable, cfg *config.Config) *SendAllHandler {
	return &SendAllHandler{api: api, pending: pending, cfg: cfg}
}

func (h *SendAllHandler) CanHandle(update tgbotapi.Update) bool {
	return update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "sendall"
}

func (h *SendAllHandler) Handle(update tgbotapi.Update) error {
	msg := update.Message

	// Anything outside the private group or from a non-admin is ignored
	// without a reply.
	if msg.Chat.ID != h.cfg.PrivateGroupID || msg.From == nil || !h.cfg.IsAdmin(msg.From.ID) {
		return nil
	}

	caption := strings.TrimSpace(msg.CommandArguments())
	if caption == "" {
		_, err := h.api.SendText(h.cfg.PrivateGroupID, "Please provide a message to send.")
		return err
	}

	h.pending.Put(msg.From.ID, caption)
	_, err := h.api.SendText(h.cfg.PrivateGroupID, "Please provide a message or photo to send to all users.")
	return err
}

// PendingBroadcastHandler consumes the message that follows /sendall and
// runs the fan-out.
type PendingBroadcastHandler struct {
	api            API
	caster         Broadcaster
	pending        *broadcast.PendingTable
	privateGroupID int64
}

// Broadcaster runs the fan-out.
type Broadcaster interface {
	Broadcast(p broadcast.Payload) (broadcast.Report, error)
}

// NewPendingBroadcastHandler creates a PendingBroadcastHandler.
func NewPendingBroadcastHandler(api API, caster Broadcaster, pending *broadcast.PendingTable, privateGroupID int64) *PendingBroadcastHandler {
	return &PendingBroadcastHandler{
		api:            api,
		caster:         caster,
		pending:        pending,
		privateGroupID: privateGroupID,
	}
}

func (h *PendingBroadcastHandler) CanHandle(update tgbotapi.Update) bool {
	msg := update.Message
	return msg != nil && msg.From != nil &&
		msg.Chat.ID == h.privateGroupID &&
		h.pending.Has(msg.From.ID)
}

func (h *PendingBroadcastHandler) Handle(update tgbotapi.Update) error {
	msg := update.Message

	caption, ok := h.pending.Take(msg.From.ID)
	if !ok {
		return nil
	}

	var payload broadcast.Payload
	switch {
	case len(msg.Photo) > 0:
		payload = broadcast.Payload{
			PhotoFileID: msg.Photo[len(msg.Photo)-1].FileID,
			Caption:     caption,
		}
	case msg.Text != "":
		payload = broadcast.Payload{Text: caption}
	default:
		_, err := h.api.SendText(h.privateGroupID, "Invalid content type. Please provide a message or photo.")
		return err
	}

	report, err := h.caster.Broadcast(payload)
	if err != nil {
		log.Error().Err(err).Msg("broadcast aborted")
		if _, serr := h.api.SendText(h.privateGroupID, "Error: "+err.Error()); serr != nil {
			log.Warn().Err(serr).Msg("failed to report broadcast error")
		}
		return nil
	}

	summary := fmt.Sprintf("Message sent to %d users. %d users have blocked the bot.", report.Sent, report.Blocked)
	_, err = h.api.SendText(h.privateGroupID, summary)
	return err
}
