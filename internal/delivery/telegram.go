// Package delivery sends a rendered image to a Telegram chat.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"csvchart/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Sender is the part of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Options struct {
	ChatID         string
	RequestTimeout time.Duration
	MaxRetries     int
	RateLimit      rate.Limit // sends per second
	Burst          int
}

func (o *Options) applyDefaults() {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RateLimit <= 0 {
		o.RateLimit = 1
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
}

// Telegram posts files to one chat. Sends are rate limited, go through a
// circuit breaker, and are retried on 429 and 5xx.
type Telegram struct {
	bot            Sender
	chatID         int64
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retry          retry.Options
}

// NewTelegram authorizes token against the Bot API.
func NewTelegram(token string, opts Options) (*Telegram, error) {
	opts.applyDefaults()
	client := &http.Client{Timeout: opts.RequestTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	return NewTelegramWithSender(bot, opts)
}

// NewTelegramWithSender wires an already constructed sender.
func NewTelegramWithSender(bot Sender, opts Options) (*Telegram, error) {
	opts.applyDefaults()

	chatID, err := parseChatID(opts.ChatID)
	if err != nil {
		return nil, err
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TelegramDelivery",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Telegram{
		bot:            bot,
		chatID:         chatID,
		rateLimiter:    rate.NewLimiter(opts.RateLimit, opts.Burst),
		circuitBreaker: circuitBreaker,
		retry: retry.Options{
			MaxRetries: opts.MaxRetries,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
		},
	}, nil
}

func parseChatID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", s, err)
	}
	return id, nil
}

// SendImage uploads path to the chat. Raster images go as photos, SVG as a
// document since Telegram photos must be raster.
func (t *Telegram) SendImage(ctx context.Context, path, caption string) error {
	var msg tgbotapi.Chattable
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FilePath(path))
		doc.Caption = caption
		msg = doc
	} else {
		photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FilePath(path))
		photo.Caption = caption
		msg = photo
	}

	err := retry.Do(ctx, t.retry, func() error {
		if err := t.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		_, err := t.circuitBreaker.Execute(func() (interface{}, error) {
			_, err := t.bot.Send(msg)
			return nil, err
		})
		return classify(err)
	})
	if err != nil {
		return fmt.Errorf("failed to send %s to telegram: %w", filepath.Base(path), err)
	}
	return nil
}

// classify turns Bot API errors into retry.StatusErrors so the retry loop
// can see the code and retry_after hint.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &retry.StatusError{
			StatusCode: apiErr.Code,
			RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
			Err:        err,
		}
	}
	return err
}
