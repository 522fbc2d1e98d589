//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"sms-relay/internal/domain/ports/adapter"
)

// MockSender records every message it is asked to send.
type MockSender struct {
	mu   sync.Mutex
	Sent []adapter.OutboundMessage

	SendFunc func(ctx context.Context, msg adapter.OutboundMessage) (string, error)
}

func (m *MockSender) Name() string { return "mock" }

func (m *MockSender) Send(ctx context.Context, msg adapter.OutboundMessage) (string, error) {
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return "SM-mock", nil
}

func (m *MockSender) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
