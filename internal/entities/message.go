package entities

const (
	PlatformTelegram = "telegram"
	PlatformWhatsApp = "whatsapp"
	PlatformWeb      = "web"
)

// Message is one inbound chat message as delivered by a transport.
type Message struct {
	ID       string
	ChatID   string // Conversation the reply goes back to
	From     string // Sender username, empty when the platform has none
	Content  string
	Platform string // e.g., "whatsapp", "web", "telegram"
}
