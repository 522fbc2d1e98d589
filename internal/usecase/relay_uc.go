package usecase

import (
	"context"
	"fmt"
	"time"

	"sms-relay/internal/domain"
	"sms-relay/internal/domain/model"
	"sms-relay/internal/domain/ports/adapter"
	"sms-relay/internal/infra/logging"
	"sms-relay/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ RelayUseCase = (*relayUC)(nil)

type RelayUseCase interface {
	// Relay sends message (or the default reminder when nil) to the configured
	// recipient through the provider, exactly once.
	Relay(ctx context.Context, message *string) model.SendResult
}

// RelayOptions is the static part of every send.
type RelayOptions struct {
	From           string
	To             string
	DefaultMessage string
	Dev            bool
}

type relayUC struct {
	sender adapter.MessageSender
	opts   RelayOptions
	log    *zerolog.Logger
}

func NewRelayUseCase(sender adapter.MessageSender, opts RelayOptions, logger *zerolog.Logger) *relayUC {
	if logger == nil {
		l := zerolog.Nop()
		logger = &l
	}
	return &relayUC{sender: sender, opts: opts, log: logger}
}

func (u *relayUC) Relay(ctx context.Context, message *string) model.SendResult {
	l := logging.With(ctx, u.log)
	defer logging.TraceDuration(l, "RelayUC.Relay")()

	body := model.RelayRequest{Message: message}.Text(u.opts.DefaultMessage)
	out := adapter.OutboundMessage{Body: body, From: u.opts.From, To: u.opts.To}

	start := time.Now()
	id, err := u.sender.Send(ctx, out)
	elapsed := time.Since(start)

	var res model.SendResult
	if err != nil {
		res = model.Failed(err)
	} else {
		res = model.Sent(id)
	}
	metrics.ObserveProviderSend(u.sender.Name(), res.Success, elapsed)

	if !res.Success {
		l.Error().
			Err(fmt.Errorf("%w: %s", domain.ErrProviderFailure, res.Error)).
			Str("provider", u.sender.Name()).
			Str("to", logging.Redact(out.To, u.opts.Dev)).
			Dur("duration", elapsed).
			Msg("relay send failed")
		return res
	}

	l.Info().
		Str("provider", u.sender.Name()).
		Str("message_sid", res.MessageSID).
		Str("to", logging.Redact(out.To, u.opts.Dev)).
		Str("body", logging.Redact(out.Body, u.opts.Dev)).
		Bool("default_message", message == nil).
		Dur("duration", elapsed).
		Msg("relay send ok")
	return res
}
