package telegram

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// RegisterWebhook points the platform at webhookURL, replacing any previous
// registration. Rate-limit responses wait the platform-instructed delay;
// other failures back off exponentially. Runs once at startup.
func (c *Client) RegisterWebhook(webhookURL string, maxAttempts int) error {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Warn().Err(err).Msg("failed to remove existing webhook")
	}

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if _, lastErr = c.api.Request(wh); lastErr == nil {
			log.Info().Str("url", webhookURL).Msg("webhook set successfully")
			return nil
		}

		lastErr = classify(lastErr)
		if delay, ok := RateLimited(lastErr); ok {
			if delay <= 0 {
				delay = time.Second
			}
			log.Warn().Dur("retry_after", delay).Msg("rate limited while setting webhook")
			time.Sleep(delay)
			continue
		}

		if attempt < maxAttempts-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			log.Warn().Err(lastErr).Dur("backoff", backoff).Msg("failed to set webhook, retrying")
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("failed to set webhook after %d attempts: %w", maxAttempts, lastErr)
}
