package bot

import (
	"encoding/json"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kapitalpro/invest_bot/internal/charts"
	"github.com/kapitalpro/invest_bot/internal/config"
	"github.com/kapitalpro/invest_bot/internal/locale"
	"github.com/kapitalpro/invest_bot/internal/model"
	"github.com/kapitalpro/invest_bot/internal/service"
)

// telegramAPI часть клиента Telegram, используемая обработчиками.
// *tgbotapi.BotAPI реализует интерфейс целиком.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Bot struct {
	api     telegramAPI
	service *service.ApprovalService
	charts  *charts.ChartGenerator
	cfg     *config.Config
	states  *StateTable
	logger  *zap.Logger
}

func NewBot(cfg *config.Config, svc *service.ApprovalService, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bot{
		api:     api,
		service: svc,
		charts:  charts.NewChartGenerator(),
		cfg:     cfg,
		states:  NewStateTable(),
		logger:  logger,
	}, nil
}

// Start запускает бота в режиме long polling.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		b.handleUpdate(update)
	}

	return nil
}

// HandleWebhook точка входа для обработки входящих webhook-обновлений.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to decode update: %w", err)
	}

	b.handleUpdate(update)
	return nil
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil && update.CallbackQuery == nil {
		return
	}

	if update.Message != nil && update.Message.IsCommand() {
		b.handleCommand(update.Message)
		return
	}

	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "adminDashboard":
		b.handleAdminDashboard(message)
	}
}

// handleStart регистрирует пользователя и отправляет приветственную карточку.
func (b *Bot) handleStart(message *tgbotapi.Message) {
	user := &model.User{
		ID:           callerID(message.From),
		FirstName:    message.From.FirstName,
		LastName:     message.From.LastName,
		Username:     message.From.UserName,
		LanguageCode: locale.DefaultCode,
	}

	// Недоступность хранилища не должна мешать приветствию
	if err := b.service.RegisterUser(b.ctx(), user); err != nil {
		b.logger.Warn("failed to register user",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}

	b.sendWelcomeCard(message.Chat.ID, message.From.UserName, locale.DefaultCode)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	helpText := "🤖 **Bot Commands:**\n\n" +
		"/start - Start the bot and show main menu\n" +
		"/help - Show this help message\n"

	if b.cfg.IsAdmin(callerID(message.From)) {
		helpText += "/adminDashboard - Admin dashboard with deposit, withdrawal, and pending transaction management\n\n" +
			"💼 **Admin Features:**\n" +
			"• Process pending deposits\n" +
			"• Process pending withdrawals\n" +
			"• View all pending transactions\n" +
			"• Manage user balances\n"
	} else {
		helpText += "\n🚀 **Quick Actions:**\n" +
			"• Use the \"Launch App\" button to access the investment platform\n" +
			"• Contact support for any issues\n"
	}

	helpText += "\nFor more information, visit our support channel."
	b.sendMarkdown(message.Chat.ID, helpText, nil)
}

// handleAdminDashboard показывает панель администратора. Любой другой
// вызывающий получает отказ в доступе без изменения состояния.
func (b *Bot) handleAdminDashboard(message *tgbotapi.Message) {
	userID := callerID(message.From)
	if !b.cfg.IsAdmin(userID) {
		b.logger.Warn("unauthorized access attempt to admin dashboard",
			zap.String("user_id", userID))
		b.reply(message, accessDeniedText)
		return
	}

	keyboard := b.getAdminKeyboard()
	b.sendMarkdown(message.Chat.ID, dashboardText, &keyboard)
	b.logger.Info("admin dashboard displayed", zap.String("user_id", userID))
}

// sendWelcomeCard отправляет карточку с фото, приветствием и клавиатурой
// выбора языка.
func (b *Bot) sendWelcomeCard(chatID int64, username, langCode string) {
	lang := locale.Get(langCode)
	if username == "" {
		username = "user"
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(b.cfg.PhotoURL))
	photo.Caption = lang.WelcomeMessage(username)
	photo.ReplyMarkup = b.getWelcomeKeyboard(lang.Code)

	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("failed to send welcome card",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		b.sendText(chatID, lang.Error)
	}
}

func callerID(from *tgbotapi.User) string {
	return strconv.FormatInt(from.ID, 10)
}
