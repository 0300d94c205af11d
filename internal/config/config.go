package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultGreetingTemplate is used when neither GREETING_TEMPLATE nor the
// bot_config table provide one.
const DefaultGreetingTemplate = "Hi, $username!\n" +
	"I see you for the first time!\n" +
	"Unfortunately my owner has not set up a greeting yet,\n" +
	"so let's wait for them together."

type Config struct {
	GreetingTemplate string `env:"GREETING_TEMPLATE"`

	SeenStore     string `env:"SEEN_STORE,default=file" validate:"oneof=file postgres badger"`
	SeenUsersPath string `env:"SEEN_USERS_PATH,default=storage/cache/newbie_detect_plugin_cache.json" validate:"required"`
	BadgerPath    string `env:"BADGER_PATH,default=storage/badger" validate:"required"`
	DatabaseURL   string `env:"DATABASE_URL" validate:"required_if=SeenStore postgres"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	WhatsAppEnabled  bool   `env:"WHATSAPP_ENABLED,default=false"`
	WhatsAppDBPath   string `env:"WHATSAPP_DB_PATH,default=devices/seller.db" validate:"required_if=WhatsAppEnabled true"`

	HTTPAddr      string  `env:"HTTP_ADDR,default=0.0.0.0:8080" validate:"hostname_port"`
	JWTSecret     string  `env:"JWT_SECRET,required=true" validate:"required"`
	AdminUsername string  `env:"ADMIN_USERNAME,default=root" validate:"required"`
	AdminPassword string  `env:"ADMIN_PASSWORD,required=true" validate:"min=6"`
	WebhookRate   float64 `env:"WEBHOOK_RATE,default=5" validate:"gt=0"`
	WebhookBurst  int     `env:"WEBHOOK_BURST,default=10" validate:"gt=0"`

	LogLevel string `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
}

// Load reads an optional .env file, then the process environment, and
// validates the result.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
