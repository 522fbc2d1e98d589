//go:build !integration

package web

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"sms-relay/internal/config"
	"sms-relay/internal/domain/ports/adapter"
	"sms-relay/internal/usecase"
)

const (
	testSecret = "test-secret"
	testFrom   = "+15005550006"
	testTo     = "+16502530000"
)

// fakeSender stands in for the SMS provider.
type fakeSender struct {
	mu   sync.Mutex
	sent []adapter.OutboundMessage
	id   string
	err  error
}

func (f *fakeSender) Name() string { return "fake" }

func (f *fakeSender) Send(ctx context.Context, msg adapter.OutboundMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeSender) calls() []adapter.OutboundMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]adapter.OutboundMessage(nil), f.sent...)
}

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{Port: 8080},
		Relay: config.RelayConfig{
			WebhookSecret:  testSecret,
			Provider:       config.ProviderNoop,
			From:           testFrom,
			To:             testTo,
			DefaultMessage: config.DefaultReminder,
		},
	}
}

func newTestServer(sender *fakeSender, cfg *config.Config) *Server {
	uc := usecase.NewRelayUseCase(sender, usecase.RelayOptions{
		From:           cfg.Relay.From,
		To:             cfg.Relay.To,
		DefaultMessage: cfg.Relay.DefaultMessage,
	}, newTestLogger())
	return NewServer(uc, cfg, newTestLogger())
}
