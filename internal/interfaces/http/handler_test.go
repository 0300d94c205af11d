package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"newbie_greeter/internal/repository"
	"newbie_greeter/internal/usecases"
)

type fakeWhatsApp struct {
	qr        string
	loggedIn  bool
	connected bool
}

func (f fakeWhatsApp) GetQR() string                { return f.qr }
func (f fakeWhatsApp) IsLoggedIn() bool             { return f.loggedIn }
func (f fakeWhatsApp) IsConnected() bool            { return f.connected }
func (f fakeWhatsApp) GetUserInfo() (string, string) { return "628123", "Seller" }

type testServer struct {
	router  *gin.Engine
	greeter *usecases.GreetingService
	store   *repository.SeenUserFile
}

func newTestServer(t *testing.T, whatsApp WhatsAppSession) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewSeenUserFile(filepath.Join(t.TempDir(), "seen.json"))
	require.NoError(t, store.Save([]string{"alice"}))

	greeter := usecases.NewGreetingService(store, "Hi, $username!", zap.NewNop())
	service := usecases.NewMessageService(greeter, zap.NewNop())
	auth, err := usecases.NewAuthUsecase("root", "hunter22", "secret")
	require.NoError(t, err)

	r := gin.New()
	SetupRoutes(r, service, greeter, auth, whatsApp, NewMiddleware("secret", 100, 100))
	return testServer{router: r, greeter: greeter, store: store}
}

func (s testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/auth/login", gin.H{"username": "root", "password": "hunter22"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

type webResponse struct {
	Status  string `json:"status"`
	Greeted bool   `json:"greeted"`
	Replies []struct {
		To      string `json:"to"`
		Content string `json:"content"`
	} `json:"replies"`
}

func TestHandleWebMessage(t *testing.T) {
	t.Run("should greet a first-time sender in the response", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)

		w := s.do(http.MethodPost, "/webhook/web", gin.H{"from": "bob", "content": "hello"}, "")
		req.Equal(http.StatusOK, w.Code)

		var resp webResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.Equal("received", resp.Status)
		req.True(resp.Greeted)
		req.Len(resp.Replies, 1)
		req.Equal("bob", resp.Replies[0].To)
		req.Equal("Hi, bob!", resp.Replies[0].Content)

		stored, _, err := s.store.Load()
		req.NoError(err)
		req.Equal([]string{"alice", "bob"}, stored)
	})

	t.Run("should reply to the given chat id", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)

		w := s.do(http.MethodPost, "/webhook/web", gin.H{"chat_id": "room-9", "from": "bob"}, "")
		req.Equal(http.StatusOK, w.Code)

		var resp webResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.Equal("room-9", resp.Replies[0].To)
	})

	t.Run("should stay silent for a known sender", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)

		w := s.do(http.MethodPost, "/webhook/web", gin.H{"from": "alice", "content": "again"}, "")
		req.Equal(http.StatusOK, w.Code)

		var resp webResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.False(resp.Greeted)
		req.Empty(resp.Replies)
	})

	t.Run("should stay silent without sender", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)

		w := s.do(http.MethodPost, "/webhook/web", gin.H{"content": "who am i"}, "")
		req.Equal(http.StatusOK, w.Code)

		var resp webResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.False(resp.Greeted)
		req.Equal([]string{"alice"}, s.greeter.SeenUsers())
	})

	t.Run("should hide storage details when the history cannot be saved", func(t *testing.T) {
		req := require.New(t)
		gin.SetMode(gin.TestMode)

		blocker := filepath.Join(t.TempDir(), "blocker")
		req.NoError(os.WriteFile(blocker, []byte("x"), 0o644))
		store := repository.NewSeenUserFile(filepath.Join(blocker, "seen.json"))
		greeter := usecases.NewGreetingService(store, "Hi, $username!", zap.NewNop())
		auth, err := usecases.NewAuthUsecase("root", "hunter22", "secret")
		req.NoError(err)
		r := gin.New()
		SetupRoutes(r, usecases.NewMessageService(greeter, zap.NewNop()), greeter, auth, nil, NewMiddleware("secret", 100, 100))
		s := testServer{router: r}

		w := s.do(http.MethodPost, "/webhook/web", gin.H{"from": "bob"}, "")
		req.Equal(http.StatusInternalServerError, w.Code)
		req.JSONEq(`{"error": "Failed to process message"}`, w.Body.String())
		req.NotContains(w.Body.String(), blocker)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)

		r := httptest.NewRequest(http.MethodPost, "/webhook/web", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, r)
		req.Equal(http.StatusBadRequest, w.Code)
	})
}

func TestWebhookRateLimit(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)

	store := repository.NewSeenUserFile(filepath.Join(t.TempDir(), "seen.json"))
	greeter := usecases.NewGreetingService(store, "Hi, $username!", zap.NewNop())
	auth, err := usecases.NewAuthUsecase("root", "hunter22", "secret")
	req.NoError(err)
	r := gin.New()
	SetupRoutes(r, usecases.NewMessageService(greeter, zap.NewNop()), greeter, auth, nil, NewMiddleware("secret", 0.0001, 1))
	s := testServer{router: r}

	req.Equal(http.StatusOK, s.do(http.MethodPost, "/webhook/web", gin.H{"from": "bob"}, "").Code)
	req.Equal(http.StatusTooManyRequests, s.do(http.MethodPost, "/webhook/web", gin.H{"from": "carl"}, "").Code)
}

func TestDashboard(t *testing.T) {
	t.Run("should refuse requests without token", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)
		req.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/seen-users", nil, "").Code)
		req.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/seen-users", nil, "garbage").Code)
	})

	t.Run("should refuse wrong credentials", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)
		w := s.do(http.MethodPost, "/api/auth/login", gin.H{"username": "root", "password": "nope"}, "")
		req.Equal(http.StatusUnauthorized, w.Code)
	})

	t.Run("should list seen users in order", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)
		s.do(http.MethodPost, "/webhook/web", gin.H{"from": "bob"}, "")

		w := s.do(http.MethodGet, "/api/seen-users", nil, s.login(t))
		req.Equal(http.StatusOK, w.Code)
		req.JSONEq(`{"count": 2, "users": ["alice", "bob"]}`, w.Body.String())
	})

	t.Run("should tell whether a user was seen", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)
		token := s.login(t)

		w := s.do(http.MethodGet, "/api/seen-users/alice", nil, token)
		req.JSONEq(`{"username": "alice", "seen": true}`, w.Body.String())

		w = s.do(http.MethodGet, "/api/seen-users/zed", nil, token)
		req.JSONEq(`{"username": "zed", "seen": false}`, w.Body.String())
	})

	t.Run("should expose the greeting template", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)
		w := s.do(http.MethodGet, "/api/greeting", nil, s.login(t))
		req.JSONEq(`{"template": "Hi, $username!"}`, w.Body.String())
	})
}

func TestWhatsAppEndpoints(t *testing.T) {
	t.Run("should report a disabled client", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, nil)
		token := s.login(t)

		w := s.do(http.MethodGet, "/api/whatsapp/status", nil, token)
		req.JSONEq(`{"enabled": false, "connected": false, "loggedIn": false}`, w.Body.String())
		req.Equal(http.StatusServiceUnavailable, s.do(http.MethodGet, "/api/whatsapp/qr", nil, token).Code)
	})

	t.Run("should wait while no qr code is available", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, fakeWhatsApp{})
		req.Equal(http.StatusAccepted, s.do(http.MethodGet, "/api/whatsapp/qr", nil, s.login(t)).Code)
	})

	t.Run("should render the qr code as png", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, fakeWhatsApp{qr: "2@abcdef,ghijkl"})

		w := s.do(http.MethodGet, "/api/whatsapp/qr", nil, s.login(t))
		req.Equal(http.StatusOK, w.Code)
		req.Equal("image/png", w.Header().Get("Content-Type"))
		req.True(bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("should report the logged in account", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, fakeWhatsApp{loggedIn: true, connected: true})

		w := s.do(http.MethodGet, "/api/whatsapp/status", nil, s.login(t))
		req.JSONEq(`{"enabled": true, "connected": true, "loggedIn": true, "phone": "628123", "name": "Seller", "hasQR": false}`, w.Body.String())
	})

	t.Run("should not report a paired device with a dropped socket as connected", func(t *testing.T) {
		req := require.New(t)
		s := newTestServer(t, fakeWhatsApp{loggedIn: true, connected: false})

		w := s.do(http.MethodGet, "/api/whatsapp/status", nil, s.login(t))
		req.JSONEq(`{"enabled": true, "connected": false, "loggedIn": true, "phone": "628123", "name": "Seller", "hasQR": false}`, w.Body.String())
	})
}

func TestHealthz(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/healthz", nil, "")
	req.Equal(http.StatusOK, w.Code)
	req.Equal("nosniff", w.Header().Get("X-Content-Type-Options"))
}
