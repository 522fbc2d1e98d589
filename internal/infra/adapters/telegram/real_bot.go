package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sms-relay/internal/domain/ports/adapter"
)

var _ adapter.MessageSender = (*BotSender)(nil)

// botAPI is the part of *tgbotapi.BotAPI used for sending.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// BotSender relays messages to a Telegram chat through a bot. The recipient
// is a numeric chat id; the sender address is ignored because a bot always
// posts as itself.
type BotSender struct {
	bot botAPI
}

// NewBotSender authenticates the bot token against the Telegram API.
func NewBotSender(token string) (*BotSender, error) {
	if token == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &BotSender{bot: bot}, nil
}

func (s *BotSender) Name() string { return "telegram" }

func (s *BotSender) Send(ctx context.Context, msg adapter.OutboundMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	chatID, err := strconv.ParseInt(msg.To, 10, 64)
	if err != nil {
		return "", fmt.Errorf("telegram: invalid chat id %q", msg.To)
	}

	sent, err := s.bot.Send(tgbotapi.NewMessage(chatID, msg.Body))
	if err != nil {
		return "", err
	}
	return strconv.Itoa(sent.MessageID), nil
}
