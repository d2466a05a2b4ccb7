package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// TelegramAnnouncer posts meeting announcements into a single configured
// chat, e.g. a team channel.
type TelegramAnnouncer struct {
	bot    *bot.Bot
	chatID int64
}

func NewTelegramAnnouncer(token string, chatID int64) (*TelegramAnnouncer, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramAnnouncer{bot: b, chatID: chatID}, nil
}

// Announce posts one text message to the announcement chat.
func (t *TelegramAnnouncer) Announce(ctx context.Context, text string) error {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
