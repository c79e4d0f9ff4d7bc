// Package bot dispatches inbound updates to registered handlers.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Handler processes one category of update.
type Handler interface {
	CanHandle(update tgbotapi.Update) bool
	Handle(update tgbotapi.Update) error
}

// Router routes each update to the first handler that claims it. Updates no
// handler claims are dropped.
type Router struct {
	handlers []Handler
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{}
}

// Register appends a handler. Registration order is dispatch order.
func (r *Router) Register(h Handler) {
	r.handlers = append(r.handlers, h)
	log.Debug().Msgf("registered handler: %T", h)
}

// Route classifies the update once and hands it to the matching handler.
func (r *Router) Route(update tgbotapi.Update) error {
	for _, h := range r.handlers {
		if h.CanHandle(update) {
			return h.Handle(update)
		}
	}

	log.Debug().Msg("no handler for update, dropping")
	return nil
}
