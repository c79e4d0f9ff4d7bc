package telegram

import (
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// FailureReason enumerates the API failures callers branch on.
type FailureReason int

const (
	FailureOther FailureReason = iota
	FailureBlocked
	FailureRateLimited
)

// SendError wraps a Telegram API failure with its classified reason, so
// callers never have to inspect error strings themselves.
type SendError struct {
	Reason     FailureReason
	RetryAfter time.Duration
	Err        error
}

func (e *SendError) Error() string {
	return e.Err.Error()
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// classify maps an API error onto a SendError. The string check happens here
// and nowhere else; the platform reports "blocked by the user" only through
// the error description.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 429:
			return &SendError{
				Reason:     FailureRateLimited,
				RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
				Err:        err,
			}
		case apiErr.Code == 403 && strings.Contains(apiErr.Message, "blocked by the user"):
			return &SendError{Reason: FailureBlocked, Err: err}
		}
	}

	return &SendError{Reason: FailureOther, Err: err}
}

// Blocked reports whether err means the recipient has blocked the bot.
func Blocked(err error) bool {
	var sendErr *SendError
	return errors.As(err, &sendErr) && sendErr.Reason == FailureBlocked
}

// RateLimited reports whether err is a rate-limit failure, returning the
// platform-instructed delay when it is.
func RateLimited(err error) (time.Duration, bool) {
	var sendErr *SendError
	if errors.As(err, &sendErr) && sendErr.Reason == FailureRateLimited {
		return sendErr.RetryAfter, true
	}
	return 0, false
}
