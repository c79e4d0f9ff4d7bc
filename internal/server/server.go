// Package server exposes the webhook HTTP surface.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/artur/filelinkbot/internal/bot"
	"github.com/artur/filelinkbot/internal/telegram"
)

// How long to wait before the single retry of a rate-limited update.
const rateLimitRetryDelay = 10 * time.Second

// Notifier mirrors activity to the console channel.
type Notifier interface {
	SendHTML(chatID int64, text string) (tgbotapi.Message, error)
}

// Server decodes webhook pushes and feeds them to the router.
type Server struct {
	engine           *gin.Engine
	router           *bot.Router
	notifier         Notifier
	consoleChannelID int64
}

// New builds the HTTP surface: a diagnostic GET / and the POST / webhook
// sink.
func New(router *bot.Router, notifier Notifier, consoleChannelID int64) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:           router,
		notifier:         notifier,
		consoleChannelID: consoleChannelID,
	}

	engine := gin.New()
	engine.Use(requestLogger(), gin.Recovery())
	engine.GET("/", s.handleRoot)
	engine.POST("/", s.handleUpdate)
	s.engine = engine

	return s
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("listening for webhook updates")
	return s.engine.Run(addr)
}

// Handler exposes the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleRoot(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.Path)
	c.String(http.StatusOK, "The HOST URL of this application is: %s", baseURL)
}

func (s *Server) handleUpdate(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(c.Request.Body).Decode(&update); err != nil {
		// Acknowledge anyway so the platform does not redeliver forever.
		log.Warn().Err(err).Msg("failed to decode update")
		c.Status(http.StatusOK)
		return
	}

	if err := s.router.Route(update); err != nil {
		if _, ok := telegram.RateLimited(err); ok {
			log.Warn().Dur("delay", rateLimitRetryDelay).Msg("rate limited, retrying update once")
			time.Sleep(rateLimitRetryDelay)
			if err := s.router.Route(update); err != nil {
				log.Error().Err(err).Msg("retry failed")
			}
		} else {
			log.Error().Err(err).Msg("failed to process update")
		}
	}

	s.mirrorActivity(update)
	c.Status(http.StatusOK)
}

// mirrorActivity tells the console channel who is fetching files.
func (s *Server) mirrorActivity(update tgbotapi.Update) {
	if s.consoleChannelID == 0 || update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	text := fmt.Sprintf("User %s (Chat ID: %d) Getting Videos.", from.FirstName, from.ID)
	if _, err := s.notifier.SendHTML(s.consoleChannelID, text); err != nil {
		log.Warn().Err(err).Msg("failed to notify console channel")
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info().
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("method", method).
			Str("path", path).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}
