package infrastructure

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"newbie_greeter/internal/entities"
)

type telegramUpdater interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramPoller long-polls the Bot API and hands every private message to
// Handler, one at a time.
type TelegramPoller struct {
	bot     telegramUpdater
	selfID  int64
	log     *zap.Logger
	Handler func(msg entities.Message)
}

func NewTelegramPoller(client *TelegramClient, handler func(msg entities.Message), log *zap.Logger) *TelegramPoller {
	return &TelegramPoller{
		bot:     client.Bot,
		selfID:  client.Bot.Self.ID,
		log:     log,
		Handler: handler,
	}
}

// Run blocks until ctx is cancelled or the update channel closes.
func (p *TelegramPoller) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := p.bot.GetUpdatesChan(u)

	p.log.Info("Started Telegram polling")
	for {
		select {
		case <-ctx.Done():
			p.bot.StopReceivingUpdates()
			p.log.Info("Stopped Telegram polling")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg, ok := TelegramMessage(update, p.selfID)
			if !ok {
				continue
			}
			p.Handler(msg)
		}
	}
}

// TelegramMessage converts a private chat update. Group chats, non-message
// updates and our own messages are skipped.
func TelegramMessage(update tgbotapi.Update, selfID int64) (entities.Message, bool) {
	m := update.Message
	if m == nil || m.Chat == nil || !m.Chat.IsPrivate() {
		return entities.Message{}, false
	}
	msg := entities.Message{
		ID:       strconv.Itoa(m.MessageID),
		ChatID:   strconv.FormatInt(m.Chat.ID, 10),
		Content:  m.Text,
		Platform: entities.PlatformTelegram,
	}
	if m.From != nil {
		if m.From.ID == selfID {
			return entities.Message{}, false
		}
		msg.From = m.From.UserName
	}
	return msg, true
}
