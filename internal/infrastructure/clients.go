package infrastructure

import (
	"fmt"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramClient struct {
	Bot    *tgbotapi.BotAPI
	sender telegramSender
}

func NewTelegramClient(token string) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot token issue: %w", err)
	}
	return &TelegramClient{Bot: bot, sender: bot}, nil
}

// SendMessage sends plain text; no parse mode so usernames containing
// markdown characters arrive untouched.
func (t *TelegramClient) SendMessage(to, content string) error {
	chatID, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", to, err)
	}
	_, err = t.sender.Send(tgbotapi.NewMessage(chatID, content))
	return err
}

type WebReply struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

// WebReplyCollector is the messenger of the web webhook: replies are kept
// and returned in the HTTP response instead of being pushed anywhere.
type WebReplyCollector struct {
	mu      sync.Mutex
	replies []WebReply
}

func NewWebReplyCollector() *WebReplyCollector {
	return &WebReplyCollector{replies: []WebReply{}}
}

func (w *WebReplyCollector) SendMessage(to, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.replies = append(w.replies, WebReply{To: to, Content: content})
	return nil
}

func (w *WebReplyCollector) Replies() []WebReply {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]WebReply{}, w.replies...)
}
