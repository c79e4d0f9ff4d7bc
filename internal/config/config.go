package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all environment-backed settings. It is built once at startup
// and injected into every component that needs it.
type Config struct {
	Token             string
	OwnerID           int64
	AdminIDs          []int64
	PrivateGroupID    int64
	LogChannelID      int64
	WebhookURL        string
	ForceSubChannelID int64 // 0 disables the force-subscribe check
	ConsoleChannelID  int64 // 0 disables console notifications
	DBPath            string
	ListenAddr        string
	LogLevel          string

	// Parsed for completeness; nothing in the current flow reads it.
	AllowedPrivateChannelIDs []int64
}

// Load reads configuration from the environment, consulting a .env file if
// one is present. TOKEN, DB_PATH and WEBHOOK_URL are mandatory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables directly")
	}

	cfg := &Config{
		Token:      os.Getenv("TOKEN"),
		WebhookURL: os.Getenv("WEBHOOK_URL"),
		DBPath:     os.Getenv("DB_PATH"),
		ListenAddr: os.Getenv("LISTEN_ADDR"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("TOKEN environment variable is not set")
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH environment variable is not set")
	}
	if cfg.WebhookURL == "" {
		return nil, fmt.Errorf("WEBHOOK_URL environment variable is not set")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":5000"
	}

	var err error
	if cfg.OwnerID, err = parseID("OWNER_ID"); err != nil {
		return nil, err
	}
	if cfg.PrivateGroupID, err = parseID("PRIVATE_GROUP_ID"); err != nil {
		return nil, err
	}
	if cfg.LogChannelID, err = parseID("LOG_CHANNEL_ID"); err != nil {
		return nil, err
	}
	if cfg.ForceSubChannelID, err = parseID("FORCE_SUB_CHANNEL"); err != nil {
		return nil, err
	}
	if cfg.ConsoleChannelID, err = parseID("CONSOLE_CHANNEL_ID"); err != nil {
		return nil, err
	}

	cfg.AdminIDs = parseIDList(os.Getenv("ADMINS"))
	// The owner is always an admin.
	cfg.AdminIDs = append(cfg.AdminIDs, cfg.OwnerID)

	cfg.AllowedPrivateChannelIDs = parseIDList(os.Getenv("ALLOWED_PRIVATE_CHANNEL_IDS"))

	return cfg, nil
}

// IsAdmin reports whether the given user id is in the admin set.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func parseID(key string) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return id, nil
}

func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Warn().Str("value", part).Msg("skipping invalid id in list")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
