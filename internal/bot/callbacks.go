package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kapitalpro/invest_bot/internal/locale"
	"github.com/kapitalpro/invest_bot/internal/model"
	"github.com/kapitalpro/invest_bot/internal/service"
)

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	switch {
	case strings.HasPrefix(callback.Data, "language_"):
		b.handleLanguageCallback(callback)
	case strings.HasPrefix(callback.Data, "admin_"):
		b.handleAdminCallback(callback)
	case strings.HasPrefix(callback.Data, "deposit_"):
		b.handleFlowCallback(callback, model.KindDeposit)
	case strings.HasPrefix(callback.Data, "withdrawal_"):
		b.handleFlowCallback(callback, model.KindWithdrawal)
	default:
		b.logger.Info("unhandled callback",
			zap.String("data", callback.Data),
			zap.String("user_id", callerID(callback.From)))
		b.answerCallback(callback.ID, "This feature is not available yet")
	}
}

// handleLanguageCallback перерисовывает приветственную карточку на выбранном
// языке.
func (b *Bot) handleLanguageCallback(callback *tgbotapi.CallbackQuery) {
	code := strings.TrimPrefix(callback.Data, "language_")
	if !locale.Known(code) {
		b.answerCallback(callback.ID, "Invalid language selection")
		return
	}

	b.sendWelcomeCard(callback.Message.Chat.ID, callback.From.UserName, code)
	b.answerCallback(callback.ID, locale.Get(code).Callback)
}

// handleAdminCallback обрабатывает кнопки панели администратора.
// Неадминистратор получает отказ без изменения состояния.
func (b *Bot) handleAdminCallback(callback *tgbotapi.CallbackQuery) {
	userID := callerID(callback.From)
	if !b.cfg.IsAdmin(userID) {
		b.logger.Warn("unauthorized admin action attempt",
			zap.String("user_id", userID),
			zap.String("data", callback.Data))
		b.answerCallback(callback.ID, "❌ Access Denied - Admin Only")
		return
	}

	switch strings.TrimPrefix(callback.Data, "admin_") {
	case "deposit":
		b.startFlow(callback, model.KindDeposit)
	case "withdraw":
		b.startFlow(callback, model.KindWithdrawal)
	case "pending":
		b.showPendingTransactions(callback)
	case "back":
		b.showAdminDashboard(callback)
	default:
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID,
			"❌ Unknown admin action", nil)
	}

	b.answerCallback(callback.ID, "")
}

// startFlow начинает диалог согласования, безусловно вытесняя предыдущий.
func (b *Bot) startFlow(callback *tgbotapi.CallbackQuery, kind model.Kind) {
	userID := callerID(callback.From)

	b.states.Set(userID, &model.Conversation{
		Kind: kind,
		Step: model.StepAwaitingID,
	})

	keyboard := b.getBackKeyboard(kind)
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID,
		formatIDPrompt(kind), &keyboard)

	b.logger.Info("approval flow started",
		zap.String("user_id", userID),
		zap.String("kind", string(kind)))
}

// handleFlowCallback обрабатывает кнопки Complete и Back внутри диалога.
func (b *Bot) handleFlowCallback(callback *tgbotapi.CallbackQuery, kind model.Kind) {
	userID := callerID(callback.From)
	if !b.cfg.IsAdmin(userID) {
		b.logger.Warn("unauthorized flow action attempt",
			zap.String("user_id", userID),
			zap.String("data", callback.Data))
		b.answerCallback(callback.ID, "❌ Access Denied - Admin Only")
		return
	}

	switch strings.TrimPrefix(callback.Data, string(kind)+"_") {
	case "back":
		b.showAdminDashboard(callback)
		b.answerCallback(callback.ID, "")
	case "complete":
		b.completeFlow(callback, kind)
	default:
		b.answerCallback(callback.ID, "Unknown "+strings.ToLower(kindTitle(kind))+" action")
	}
}

// completeFlow терминальный переход: применяет заявку к балансу.
// Запись диалога уничтожается и при успехе, и при ошибке.
func (b *Bot) completeFlow(callback *tgbotapi.CallbackQuery, kind model.Kind) {
	userID := callerID(callback.From)

	conv, ok := b.states.Get(userID)
	if !ok {
		b.answerCallback(callback.ID, "No active "+strings.ToLower(kindTitle(kind))+" session")
		return
	}

	// Защитная проверка: отсутствие идентификатора или суммы означает
	// поврежденное состояние; хранилище не трогаем
	if conv.Kind != kind || conv.TxID == "" || !conv.Amount.IsPositive() {
		b.states.Clear(userID)
		b.logger.Error("corrupted conversation state on complete",
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.String("tx_id", conv.TxID))
		b.answerCallback(callback.ID, "Missing "+strings.ToLower(kindTitle(kind))+" information")
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, invalidStateText, nil)
		return
	}

	result, err := b.approve(conv)
	b.states.Clear(userID)

	keyboard := b.getBackKeyboard(kind)
	if err != nil {
		b.logger.Error("approval failed",
			zap.String("user_id", userID),
			zap.String("kind", string(kind)),
			zap.String("tx_id", conv.TxID),
			zap.String("amount", conv.Amount.String()),
			zap.Error(err))
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID,
			formatApprovalFailure(kind, conv, err), &keyboard)
		b.answerCallback(callback.ID, "")
		return
	}

	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID,
		formatApprovalSuccess(result), &keyboard)
	b.answerCallback(callback.ID, "")
}

func (b *Bot) approve(conv *model.Conversation) (*service.ApprovalResult, error) {
	if conv.Kind == model.KindDeposit {
		return b.service.ApproveDeposit(b.ctx(), conv.TxID, conv.Amount)
	}
	return b.service.ApproveWithdrawal(b.ctx(), conv.TxID, conv.Amount)
}

// showAdminDashboard возвращает панель администратора, уничтожая диалог.
func (b *Bot) showAdminDashboard(callback *tgbotapi.CallbackQuery) {
	userID := callerID(callback.From)
	b.states.Clear(userID)

	keyboard := b.getAdminKeyboard()
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID,
		dashboardText, &keyboard)
	b.logger.Info("admin dashboard displayed", zap.String("user_id", userID))
}

// showPendingTransactions сводка ожидающих заявок с диаграммой сумм.
func (b *Bot) showPendingTransactions(callback *tgbotapi.CallbackQuery) {
	overview, err := b.service.GetPendingOverview(b.ctx())
	if err != nil {
		b.logger.Error("failed to load pending overview", zap.Error(err))
		b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID,
			"❌ **Error Loading Pending Transactions**\n\n"+
				"An error occurred while fetching pending transactions. Please try again.", nil)
		return
	}

	keyboard := b.getPendingKeyboard()
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID,
		formatPendingOverview(overview), &keyboard)

	chartData, err := b.charts.GeneratePendingOverview(overview.Stats)
	if err != nil {
		b.logger.Warn("failed to render pending chart", zap.Error(err))
		return
	}
	if chartData != nil {
		photo := tgbotapi.NewPhoto(callback.Message.Chat.ID, tgbotapi.FileBytes{
			Name:  "pending.png",
			Bytes: chartData,
		})
		if _, err := b.api.Send(photo); err != nil {
			b.logger.Warn("failed to send pending chart", zap.Error(err))
		}
	}
}
