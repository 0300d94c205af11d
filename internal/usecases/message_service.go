package usecases

import (
	"go.uber.org/zap"

	"newbie_greeter/internal/entities"
	"newbie_greeter/internal/interfaces"
)

// MessageService routes inbound messages from every transport to the
// greeter, with the reply client of the platform they came from.
type MessageService struct {
	greeter    *GreetingService
	messengers map[string]interfaces.Messenger
	log        *zap.Logger
}

func NewMessageService(greeter *GreetingService, log *zap.Logger) *MessageService {
	return &MessageService{
		greeter:    greeter,
		messengers: make(map[string]interfaces.Messenger),
		log:        log,
	}
}

// RegisterMessenger sets the reply client for a platform. Not safe to call
// once messages are flowing.
func (s *MessageService) RegisterMessenger(platform string, messenger interfaces.Messenger) {
	s.messengers[platform] = messenger
}

// ProcessMessage handles msg with the messenger registered for its platform.
func (s *MessageService) ProcessMessage(msg entities.Message) error {
	return s.ProcessMessageWith(msg, s.messengers[msg.Platform])
}

// ProcessMessageWith handles msg replying through messenger.
func (s *MessageService) ProcessMessageWith(msg entities.Message, messenger interfaces.Messenger) error {
	if err := s.greeter.Handle(msg, messenger); err != nil {
		s.log.Error("Failed to handle inbound message",
			zap.Error(err),
			zap.String("platform", msg.Platform),
			zap.String("from", msg.From),
			zap.String("chat_id", msg.ChatID))
		return err
	}
	return nil
}
