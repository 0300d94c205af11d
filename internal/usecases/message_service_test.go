package usecases

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"newbie_greeter/internal/entities"
	"newbie_greeter/internal/interfaces"
	"newbie_greeter/internal/mocks"
)

func TestMessageService_ProcessMessage(t *testing.T) {
	t.Run("should reply on the platform the message came from", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockSeenUserStore(ctrl)
		telegram := mocks.NewMockMessenger(ctrl)
		whatsapp := mocks.NewMockMessenger(ctrl)

		store.EXPECT().Load().Return([]string{}, interfaces.LoadMissing, nil)
		store.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
		whatsapp.EXPECT().SendMessage("628123", "Hi, 628123!").Return(nil).Times(1)
		telegram.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Times(0)

		svc := NewMessageService(NewGreetingService(store, "Hi, $username!", zap.NewNop()), zap.NewNop())
		svc.RegisterMessenger(entities.PlatformTelegram, telegram)
		svc.RegisterMessenger(entities.PlatformWhatsApp, whatsapp)

		req.NoError(svc.ProcessMessage(entities.Message{
			ChatID:   "628123",
			From:     "628123",
			Platform: entities.PlatformWhatsApp,
		}))
	})

	t.Run("should fail for a platform without client", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockSeenUserStore(ctrl)

		store.EXPECT().Load().Return([]string{}, interfaces.LoadMissing, nil)

		svc := NewMessageService(NewGreetingService(store, "Hi, $username!", zap.NewNop()), zap.NewNop())
		err := svc.ProcessMessage(entities.Message{ChatID: "1", From: "bob", Platform: "sms"})
		req.ErrorIs(err, ErrNoMessenger)
	})
}
