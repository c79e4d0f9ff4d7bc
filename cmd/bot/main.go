package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/artur/filelinkbot/internal/access"
	"github.com/artur/filelinkbot/internal/bot"
	"github.com/artur/filelinkbot/internal/broadcast"
	"github.com/artur/filelinkbot/internal/config"
	"github.com/artur/filelinkbot/internal/database"
	"github.com/artur/filelinkbot/internal/database/repository"
	"github.com/artur/filelinkbot/internal/delivery"
	"github.com/artur/filelinkbot/internal/handler"
	"github.com/artur/filelinkbot/internal/linkid"
	"github.com/artur/filelinkbot/internal/logging"
	"github.com/artur/filelinkbot/internal/server"
	"github.com/artur/filelinkbot/internal/telegram"
)

const (
	webhookMaxAttempts  = 5
	pendingBroadcastTTL = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel)

	db, err := database.New(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	userRepo := repository.NewUserRepository(db.DB)
	fileRepo := repository.NewFileRepository(db.DB)

	client, err := telegram.NewClient(cfg.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create telegram client")
	}

	if cfg.ConsoleChannelID != 0 {
		if _, err := client.SendHTML(cfg.ConsoleChannelID, "Connected to the file store."); err != nil {
			log.Warn().Err(err).Msg("failed to notify console channel")
		}
	}

	gate := access.New(client, cfg.ForceSubChannelID, cfg.OwnerID)
	ids := linkid.New(fileRepo)
	deliverer := delivery.New(client, fileRepo)
	pending := broadcast.NewPendingTable(pendingBroadcastTTL)
	caster := broadcast.New(client, userRepo)

	// Registration order is dispatch order; the log forwarder is the
	// catch-all and goes last.
	router := bot.NewRouter()
	router.Register(handler.NewCloseHandler(client))
	router.Register(handler.NewStartHandler(client, userRepo, gate, deliverer, cfg.ForceSubChannelID))
	router.Register(handler.NewHelpHandler(client))
	router.Register(handler.NewSendAllHandler(client, pending, cfg))
	router.Register(handler.NewPendingBroadcastHandler(client, caster, pending, cfg.PrivateGroupID))
	router.Register(handler.NewUploadHandler(client, fileRepo, ids, cfg))
	router.Register(handler.NewLogForwardHandler(client, cfg.LogChannelID))

	if err := client.RegisterWebhook(cfg.WebhookURL, webhookMaxAttempts); err != nil {
		log.Fatal().Err(err).Msg("failed to register webhook")
	}

	log.Info().Msg("bot is running")

	srv := server.New(router, client, cfg.ConsoleChannelID)
	if err := srv.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
