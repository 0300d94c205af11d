package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"newbie_greeter/internal/entities"
	"newbie_greeter/internal/infrastructure"
	"newbie_greeter/internal/usecases"
)

// WhatsAppSession is the part of the WhatsApp client the dashboard reads.
type WhatsAppSession interface {
	GetQR() string
	IsLoggedIn() bool
	IsConnected() bool
	GetUserInfo() (string, string)
}

type Handler struct {
	messageService *usecases.MessageService
	greeter        *usecases.GreetingService
	auth           *usecases.AuthUsecase
	whatsApp       WhatsAppSession
}

func NewHandler(service *usecases.MessageService, greeter *usecases.GreetingService, auth *usecases.AuthUsecase, whatsApp WhatsAppSession) *Handler {
	return &Handler{
		messageService: service,
		greeter:        greeter,
		auth:           auth,
		whatsApp:       whatsApp,
	}
}

// SetupRoutes wires the webhook and dashboard. whatsApp may be nil when
// WhatsApp is disabled.
func SetupRoutes(r *gin.Engine, service *usecases.MessageService, greeter *usecases.GreetingService, auth *usecases.AuthUsecase, whatsApp WhatsAppSession, middleware *Middleware) {
	h := NewHandler(service, greeter, auth, whatsApp)

	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(1 << 20))
	r.Use(middleware.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/webhook/web", middleware.RateLimitPerClient(), h.HandleWebMessage)
	r.POST("/api/auth/login", h.Login)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/seen-users", h.ListSeenUsers)
		api.GET("/seen-users/:username", h.GetSeenUser)
		api.GET("/greeting", h.GetGreeting)
		api.GET("/whatsapp/status", h.GetWhatsAppStatus)
		api.GET("/whatsapp/qr", h.GetWhatsAppQRCode)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	token, err := h.auth.Login(loginReq.Username, loginReq.Password)
	if err != nil {
		if errors.Is(err, usecases.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HandleWebMessage feeds a message posted by a web chat widget to the
// greeter and answers with whatever the bot replied.
func (h *Handler) HandleWebMessage(c *gin.Context) {
	var payload struct {
		ChatID  string `json:"chat_id"`
		From    string `json:"from"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := entities.Message{
		ID:       uuid.NewString(),
		ChatID:   SanitizeString(payload.ChatID),
		From:     SanitizeString(TruncateString(payload.From, MaxUsernameLength)),
		Content:  SanitizeString(TruncateString(payload.Content, MaxContentLength)),
		Platform: entities.PlatformWeb,
	}
	if msg.ChatID == "" {
		msg.ChatID = msg.From
	}

	collector := infrastructure.NewWebReplyCollector()
	if err := h.messageService.ProcessMessageWith(msg, collector); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	replies := collector.Replies()
	c.JSON(http.StatusOK, gin.H{
		"status":  "received",
		"id":      msg.ID,
		"greeted": len(replies) > 0,
		"replies": replies,
	})
}

func (h *Handler) ListSeenUsers(c *gin.Context) {
	users := h.greeter.SeenUsers()
	c.JSON(http.StatusOK, gin.H{
		"count": len(users),
		"users": users,
	})
}

func (h *Handler) GetSeenUser(c *gin.Context) {
	username := c.Param("username")
	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"seen":     h.greeter.IsSeen(username),
	})
}

func (h *Handler) GetGreeting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"template": h.greeter.Template()})
}

func (h *Handler) GetWhatsAppStatus(c *gin.Context) {
	if h.whatsApp == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false, "connected": false, "loggedIn": false})
		return
	}

	phone, name := h.whatsApp.GetUserInfo()
	c.JSON(http.StatusOK, gin.H{
		"enabled":   true,
		"connected": h.whatsApp.IsConnected(),
		"loggedIn":  h.whatsApp.IsLoggedIn(),
		"phone":     phone,
		"name":      name,
		"hasQR":     h.whatsApp.GetQR() != "",
	})
}

// GetWhatsAppQRCode returns the pending login QR code as a PNG.
func (h *Handler) GetWhatsAppQRCode(c *gin.Context) {
	if h.whatsApp == nil {
		c.String(http.StatusServiceUnavailable, "WhatsApp not configured")
		return
	}

	qrCodeString := h.whatsApp.GetQR()
	if qrCodeString == "" {
		if h.whatsApp.IsLoggedIn() {
			c.String(http.StatusOK, "Already logged in")
			return
		}
		c.String(http.StatusAccepted, "QR code not yet available. Please wait...")
		return
	}

	png, err := qrcode.Encode(qrCodeString, qrcode.Medium, 256)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
