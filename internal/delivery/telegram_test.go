package delivery

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"csvchart/internal/infra/retry"
)

type fakeSender struct {
	errs  []error
	calls int
	sent  []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.calls++
	f.sent = append(f.sent, c)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return tgbotapi.Message{}, err
	}
	return tgbotapi.Message{MessageID: f.calls}, nil
}

func newTestTelegram(t *testing.T, s Sender, maxRetries int) *Telegram {
	t.Helper()
	tg, err := NewTelegramWithSender(s, Options{
		ChatID:     "-100123",
		MaxRetries: maxRetries,
		RateLimit:  rate.Inf,
	})
	if err != nil {
		t.Fatalf("NewTelegramWithSender failed: %v", err)
	}
	tg.retry.BaseDelay = 1
	tg.retry.MaxDelay = 1
	return tg
}

func TestSendImage_Photo(t *testing.T) {
	s := &fakeSender{}
	tg := newTestTelegram(t, s, 0)

	if err := tg.SendImage(context.Background(), "out/chart.png", "chart"); err != nil {
		t.Fatalf("SendImage failed: %v", err)
	}
	photo, ok := s.sent[0].(tgbotapi.PhotoConfig)
	if !ok {
		t.Fatalf("expected PhotoConfig, got %T", s.sent[0])
	}
	if photo.ChatID != -100123 || photo.Caption != "chart" {
		t.Fatalf("unexpected photo: chat=%d caption=%q", photo.ChatID, photo.Caption)
	}
}

func TestSendImage_SVGAsDocument(t *testing.T) {
	s := &fakeSender{}
	tg := newTestTelegram(t, s, 0)

	if err := tg.SendImage(context.Background(), "chart.SVG", ""); err != nil {
		t.Fatalf("SendImage failed: %v", err)
	}
	if _, ok := s.sent[0].(tgbotapi.DocumentConfig); !ok {
		t.Fatalf("expected DocumentConfig, got %T", s.sent[0])
	}
}

func TestSendImage_RetriesTooManyRequests(t *testing.T) {
	s := &fakeSender{errs: []error{
		&tgbotapi.Error{Code: 429, Message: "Too Many Requests", ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 0}},
		&tgbotapi.Error{Code: 502, Message: "Bad Gateway"},
	}}
	tg := newTestTelegram(t, s, 3)

	if err := tg.SendImage(context.Background(), "chart.png", ""); err != nil {
		t.Fatalf("SendImage failed: %v", err)
	}
	if s.calls != 3 {
		t.Fatalf("calls = %d, want 3", s.calls)
	}
}

func TestSendImage_NoRetryOnBadRequest(t *testing.T) {
	s := &fakeSender{errs: []error{&tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}}}
	tg := newTestTelegram(t, s, 3)

	err := tg.SendImage(context.Background(), "chart.png", "")
	var se *retry.StatusError
	if !errors.As(err, &se) || se.StatusCode != 400 {
		t.Fatalf("expected status 400, got %v", err)
	}
	if s.calls != 1 {
		t.Fatalf("calls = %d, want 1", s.calls)
	}
}

func TestSendImage_BreakerOpens(t *testing.T) {
	fail := make([]error, 10)
	for i := range fail {
		fail[i] = errors.New("connection reset")
	}
	s := &fakeSender{errs: fail}
	tg := newTestTelegram(t, s, 0)

	var err error
	for i := 0; i < 7; i++ {
		err = tg.SendImage(context.Background(), "chart.png", "")
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if s.calls != 6 {
		t.Fatalf("calls = %d, want 6", s.calls)
	}
}

func TestNewTelegramWithSender_InvalidChat(t *testing.T) {
	if _, err := NewTelegramWithSender(&fakeSender{}, Options{ChatID: "@channel"}); err == nil {
		t.Fatalf("expected error for non-numeric chat id")
	}
}
