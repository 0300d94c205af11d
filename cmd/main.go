package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"newbie_greeter/internal/config"
	"newbie_greeter/internal/entities"
	"newbie_greeter/internal/infrastructure"
	"newbie_greeter/internal/interfaces/http"
	"newbie_greeter/internal/logger"
	"newbie_greeter/internal/repository"
	"newbie_greeter/internal/usecases"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres is optional: it backs the postgres store and the bot_config template.
	var pgClient *infrastructure.PostgresClient
	if cfg.DatabaseURL != "" {
		pgClient, err = infrastructure.NewPostgresClient(cfg.DatabaseURL, log.Named("postgres"))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pgClient.Close()
	}

	pool := pgPool(pgClient)
	store, closeStore, err := repository.OpenSeenUserStore(cfg.SeenStore, cfg.SeenUsersPath, cfg.BadgerPath, pool)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("Failed to close seen user store", zap.Error(err))
		}
	}()

	template := resolveGreetingTemplate(cfg, pgClient, log)
	greeter := usecases.NewGreetingService(store, template, log.Named("greeter"))
	messageService := usecases.NewMessageService(greeter, log.Named("messages"))
	handle := func(msg entities.Message) {
		// errors are logged by the message service
		_ = messageService.ProcessMessage(msg)
	}

	var poller *infrastructure.TelegramPoller
	if cfg.TelegramBotToken != "" {
		telegramClient, err := infrastructure.NewTelegramClient(cfg.TelegramBotToken)
		if err != nil {
			log.Warn("Telegram disabled", zap.Error(err))
		} else {
			messageService.RegisterMessenger(entities.PlatformTelegram, telegramClient)
			poller = infrastructure.NewTelegramPoller(telegramClient, handle, log.Named("telegram"))
			log.Info("Telegram bot connected", zap.String("bot", telegramClient.Bot.Self.UserName))
		}
	} else {
		log.Info("Telegram disabled (no token)")
	}

	var whatsApp http.WhatsAppSession
	if cfg.WhatsAppEnabled {
		waClient, err := infrastructure.NewWhatsAppClient(cfg.WhatsAppDBPath, log.Named("whatsapp"))
		if err != nil {
			return fmt.Errorf("whatsapp setup failed: %w", err)
		}
		messageService.RegisterMessenger(entities.PlatformWhatsApp, waClient)
		waClient.OnMessage(handle)
		if err := waClient.Connect(); err != nil {
			return fmt.Errorf("whatsapp connect failed: %w", err)
		}
		defer waClient.Disconnect()
		whatsApp = waClient
	}

	if poller != nil {
		go poller.Run(ctx)
	}

	auth, err := usecases.NewAuthUsecase(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
	if err != nil {
		return err
	}
	middleware := http.NewMiddleware(cfg.JWTSecret, rate.Limit(cfg.WebhookRate), cfg.WebhookBurst)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	http.SetupRoutes(r, messageService, greeter, auth, whatsApp, middleware)

	srv := &nethttp.Server{Addr: cfg.HTTPAddr, Handler: r}
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("address", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown", zap.Error(err))
	}
	log.Info("Program stopped cleanly")
	return nil
}
