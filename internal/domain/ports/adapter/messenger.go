// File: internal/domain/ports/adapter/messenger.go
package adapter

import "context"

// OutboundMessage is a single text message handed to a provider.
type OutboundMessage struct {
	Body string
	From string
	To   string
}

// MessageSender is the hex port for messaging providers (SMS, chat).
type MessageSender interface {
	Name() string
	// Send delivers msg synchronously and returns the provider-assigned id.
	// Errors carry the provider's own description unmodified.
	Send(ctx context.Context, msg OutboundMessage) (string, error)
}
