package sms

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"sms-relay/internal/domain/ports/adapter"
)

var _ adapter.MessageSender = (*TwilioSender)(nil)

// messageCreator is the slice of the Twilio v2010 API the sender needs.
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender sends SMS through the Twilio Programmable Messaging API.
type TwilioSender struct {
	api messageCreator
}

func NewTwilioSender(accountSID, authToken string) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" {
		return nil, errors.New("twilio: account sid and auth token are required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api}, nil
}

func (s *TwilioSender) Name() string { return "twilio" }

// Send creates one message resource. The Twilio SDK has no context support,
// so ctx is only checked before the call is made.
func (s *TwilioSender) Send(ctx context.Context, msg adapter.OutboundMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &openapi.CreateMessageParams{}
	params.SetBody(msg.Body)
	params.SetFrom(msg.From)
	params.SetTo(msg.To)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
