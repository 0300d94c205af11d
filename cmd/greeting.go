package main

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"newbie_greeter/internal/config"
	"newbie_greeter/internal/infrastructure"
	"newbie_greeter/internal/repository"
)

type configReader interface {
	GetConfig(key string) (string, error)
}

// resolveGreetingTemplate picks GREETING_TEMPLATE, then bot_config, then the
// built-in default. It is read once; the template never changes afterwards.
func resolveGreetingTemplate(cfg config.Config, pgClient *infrastructure.PostgresClient, log *zap.Logger) string {
	var stored configReader
	if pgClient != nil {
		stored = repository.NewConfigRepository(pgClient.Pool)
	}
	return pickGreetingTemplate(cfg.GreetingTemplate, stored, log)
}

func pickGreetingTemplate(fromEnv string, stored configReader, log *zap.Logger) string {
	if fromEnv != "" {
		return fromEnv
	}
	if stored != nil {
		value, err := stored.GetConfig(repository.GreetingTemplateKey)
		if err != nil {
			log.Warn("Could not read greeting template from bot_config", zap.Error(err))
		} else if value != "" {
			return value
		}
	}
	return config.DefaultGreetingTemplate
}

func pgPool(pgClient *infrastructure.PostgresClient) *pgxpool.Pool {
	if pgClient == nil {
		return nil
	}
	return pgClient.Pool
}
