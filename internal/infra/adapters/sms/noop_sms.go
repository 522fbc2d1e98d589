package sms

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"sms-relay/internal/domain/ports/adapter"
)

var _ adapter.MessageSender = (*NoopSender)(nil)

// NoopSender logs messages instead of sending them. Useful for local runs.
type NoopSender struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	log     *zerolog.Logger
	sent    []adapter.OutboundMessage
}

func NewNoopSender(logger *zerolog.Logger) *NoopSender {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &NoopSender{
		entropy: ulid.Monotonic(rand.Reader, 0),
		log:     logger,
	}
}

func (s *NoopSender) Name() string { return "noop" }

func (s *NoopSender) Send(ctx context.Context, msg adapter.OutboundMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	id := "noop-" + ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()

	s.log.Info().Str("id", id).Str("to", msg.To).Int("len", len(msg.Body)).Msg("noop send")
	return id, nil
}

// Sent returns a copy of every message accepted so far.
func (s *NoopSender) Sent() []adapter.OutboundMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]adapter.OutboundMessage(nil), s.sent...)
}
