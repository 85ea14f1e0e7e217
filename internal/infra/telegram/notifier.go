package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes a short note to the family's Telegram chat when a new
// tribute arrives. Send-only: the bot never polls for updates.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}

	return &Notifier{api: api, chatID: chatID}, nil
}

func (n *Notifier) Send(ctx context.Context, text string) error {
	if n == nil || n.api == nil {
		return fmt.Errorf("telegram notifier is not configured")
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("notification text is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram notification: %w", err)
	}

	return nil
}
