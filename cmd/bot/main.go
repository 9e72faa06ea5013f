package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/kapitalpro/invest_bot/internal/bot"
	"github.com/kapitalpro/invest_bot/internal/config"
	"github.com/kapitalpro/invest_bot/internal/repository"
	"github.com/kapitalpro/invest_bot/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		logger.Fatal("failed to init repository", zap.Error(err))
	}

	svc := service.NewApprovalService(repo, logger)

	b, err := bot.NewBot(cfg, svc, logger)
	if err != nil {
		logger.Fatal("failed to init bot", zap.Error(err))
	}

	logger.Info("bot starting")
	if err := b.Start(); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}
