package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"

	"newbie_greeter/internal/entities"
	"newbie_greeter/internal/logger"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type WhatsAppClient struct {
	Client *whatsmeow.Client
	log    *zap.Logger

	qrCode string
	qrLock sync.RWMutex
}

func NewWhatsAppClient(dbPath string, log *zap.Logger) (*WhatsAppClient, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create device directory: %w", err)
	}

	container, err := sqlstore.New(context.Background(), "sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)", logger.WhatsApp(log, "Database"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	client := whatsmeow.NewClient(deviceStore, logger.WhatsApp(log, "Client"))
	return &WhatsAppClient{
		Client: client,
		log:    log,
	}, nil
}

// Connect resumes the stored session, or starts a QR login when there is none.
func (w *WhatsAppClient) Connect() error {
	if w.Client.Store.ID != nil {
		if err := w.Client.Connect(); err != nil {
			return err
		}
		w.log.Info("WhatsApp client connected (existing session)")
		return nil
	}

	qrChan, _ := w.Client.GetQRChannel(context.Background())
	if err := w.Client.Connect(); err != nil {
		return err
	}

	go func() {
		for evt := range qrChan {
			if evt.Event == "code" {
				w.qrLock.Lock()
				w.qrCode = evt.Code
				w.qrLock.Unlock()
				w.log.Info("New WhatsApp QR code generated")
				continue
			}
			w.qrLock.Lock()
			w.qrCode = ""
			w.qrLock.Unlock()
			w.log.Info("WhatsApp login event", zap.String("event", evt.Event))
		}
	}()
	return nil
}

func (w *WhatsAppClient) GetQR() string {
	w.qrLock.RLock()
	defer w.qrLock.RUnlock()
	return w.qrCode
}

func (w *WhatsAppClient) IsLoggedIn() bool {
	return w.Client.Store.ID != nil
}

// GetUserInfo returns the connected phone number and push name.
func (w *WhatsAppClient) GetUserInfo() (string, string) {
	if w.Client.Store.ID == nil {
		return "", ""
	}
	return w.Client.Store.ID.User, w.Client.Store.PushName
}

func (w *WhatsAppClient) IsConnected() bool {
	return w.Client.IsConnected() && w.Client.Store.ID != nil
}

func (w *WhatsAppClient) Disconnect() {
	w.Client.Disconnect()
}

// OnMessage registers handler for every direct text message.
func (w *WhatsAppClient) OnMessage(handler func(msg entities.Message)) {
	w.Client.AddEventHandler(whatsAppEventHandler(handler))
}

func whatsAppEventHandler(handler func(msg entities.Message)) func(interface{}) {
	return func(evt interface{}) {
		v, ok := evt.(*events.Message)
		if !ok {
			return
		}
		if msg, ok := WhatsAppMessage(v); ok {
			handler(msg)
		}
	}
}

// WhatsAppMessage converts a message event. Group messages and our own
// messages are skipped.
func WhatsAppMessage(evt *events.Message) (entities.Message, bool) {
	if evt.Info.IsGroup || evt.Info.IsFromMe {
		return entities.Message{}, false
	}

	var content string
	if evt.Message.GetConversation() != "" {
		content = evt.Message.GetConversation()
	} else if evt.Message.GetExtendedTextMessage() != nil {
		content = evt.Message.GetExtendedTextMessage().GetText()
	}

	return entities.Message{
		ID:       string(evt.Info.ID),
		ChatID:   evt.Info.Chat.String(),
		From:     evt.Info.Sender.User,
		Content:  content,
		Platform: entities.PlatformWhatsApp,
	}, true
}

// SendMessage accepts a full JID or a bare phone number.
func (w *WhatsAppClient) SendMessage(to string, content string) error {
	jid, err := toJID(to)
	if err != nil {
		return err
	}

	_, err = w.Client.SendMessage(context.Background(), jid, &waProto.Message{
		Conversation: &content,
	})
	return err
}

func toJID(to string) (types.JID, error) {
	if !strings.Contains(to, "@") {
		to += "@" + types.DefaultUserServer
	}
	jid, err := types.ParseJID(to)
	if err != nil {
		return types.JID{}, fmt.Errorf("invalid number format: %w", err)
	}
	return jid, nil
}
