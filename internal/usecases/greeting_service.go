package usecases

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"newbie_greeter/internal/entities"
	"newbie_greeter/internal/interfaces"
)

// UsernamePlaceholder is replaced by the sender's username in the template.
const UsernamePlaceholder = "$username"

// GreetingService sends the greeting template to every sender it has never
// seen before and remembers them in the seen-user store.
type GreetingService struct {
	store    interfaces.SeenUserStore
	template string
	log      *zap.Logger

	mu   sync.Mutex
	seen []string
}

// NewGreetingService loads the seen list once. Unreadable history is logged
// and treated as empty.
func NewGreetingService(store interfaces.SeenUserStore, template string, log *zap.Logger) *GreetingService {
	users, status, err := store.Load()
	switch {
	case err != nil:
		log.Error("Could not read seen users, starting with empty history", zap.Error(err))
	case status == interfaces.LoadMissing:
		log.Info("No seen users recorded yet")
	case status == interfaces.LoadCorrupt:
		log.Warn("Seen users history is unreadable, starting with empty history")
	default:
		log.Info("Loaded users who already wrote to us", zap.Int("count", len(users)))
	}
	if users == nil {
		users = []string{}
	}

	return &GreetingService{
		store:    store,
		template: template,
		log:      log,
		seen:     users,
	}
}

// Handle greets msg.From through messenger if this is the first message we
// ever get from them. The sender is recorded and persisted before the send,
// so a failed send never leads to a second greeting.
func (s *GreetingService) Handle(msg entities.Message, messenger interfaces.Messenger) error {
	if msg.From == "" || s.template == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.Contains(s.seen, msg.From) {
		return nil
	}
	if messenger == nil {
		return ErrNoMessenger
	}

	text := s.Render(msg.From)

	s.log.Info("User writes for the first time, sending greeting",
		zap.String("username", msg.From),
		zap.String("platform", msg.Platform))
	s.seen = append(s.seen, msg.From)
	if err := s.store.Save(s.seen); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistSeenUsers, err)
	}

	if err := messenger.SendMessage(msg.ChatID, text); err != nil {
		return fmt.Errorf("send greeting to %s: %w", msg.From, err)
	}
	return nil
}

// Render substitutes username into the template.
func (s *GreetingService) Render(username string) string {
	return strings.ReplaceAll(s.template, UsernamePlaceholder, username)
}

func (s *GreetingService) Template() string {
	return s.template
}

func (s *GreetingService) IsSeen(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Contains(s.seen, username)
}

// SeenUsers returns a copy of the seen list in first-contact order.
func (s *GreetingService) SeenUsers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.seen...)
}
