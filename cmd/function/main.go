package main

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kapitalpro/invest_bot/internal/bot"
	"github.com/kapitalpro/invest_bot/internal/config"
	"github.com/kapitalpro/invest_bot/internal/repository"
	"github.com/kapitalpro/invest_bot/internal/service"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

var (
	initOnce sync.Once
	appBot   *bot.Bot
	initErr  error
)

// initApp собирает зависимости один раз на инстанс функции.
func initApp() (*bot.Bot, error) {
	initOnce.Do(func() {
		var cfg *config.Config
		cfg, initErr = config.LoadConfig()
		if initErr != nil {
			return
		}

		var logger *zap.Logger
		logger, initErr = zap.NewProduction()
		if initErr != nil {
			return
		}

		var repo *repository.SupabaseRepository
		repo, initErr = repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
		if initErr != nil {
			return
		}

		svc := service.NewApprovalService(repo, logger)
		appBot, initErr = bot.NewBot(cfg, svc, logger)
	})
	return appBot, initErr
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	b, err := initApp()
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
