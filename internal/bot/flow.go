package bot

import (
	"errors"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kapitalpro/invest_bot/internal/locale"
	"github.com/kapitalpro/invest_bot/internal/model"
	"github.com/kapitalpro/invest_bot/internal/service"
)

// Идентификаторы заявок: 3-20 алфавитно-цифровых символов.
var txIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)

// handleMessage маршрутизирует свободный текст. Вне диалога пользователь
// получает подсказку /start; внутри диалога текст интерпретируется
// текущим шагом state machine.
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	userID := callerID(message.From)

	conv, ok := b.states.Get(userID)
	if !ok {
		b.reply(message, locale.Get(locale.DefaultCode).StartPrompt)
		return
	}

	// Диалог согласования доступен только администратору
	if !b.cfg.IsAdmin(userID) {
		b.logger.Warn("unauthorized flow access attempt",
			zap.String("user_id", userID))
		b.states.Clear(userID)
		b.reply(message, accessDeniedText)
		return
	}

	text := strings.TrimSpace(message.Text)
	b.logger.Info("flow input",
		zap.String("user_id", userID),
		zap.String("kind", string(conv.Kind)),
		zap.Int("step", int(conv.Step)))

	switch conv.Step {
	case model.StepAwaitingID:
		b.handleTransactionIDInput(message, userID, conv, text)
	case model.StepAwaitingAmount:
		b.handleAmountInput(message, conv, text)
	case model.StepConfirming:
		// На шаге подтверждения допустимы только кнопки
		b.reply(message, confirmingNoticeText)
	default:
		b.logger.Error("invalid conversation step",
			zap.String("user_id", userID),
			zap.Int("step", int(conv.Step)))
		b.states.Clear(userID)
		b.reply(message, invalidStateText)
	}
}

// handleTransactionIDInput шаг ввода идентификатора: формат, существование,
// статус pending. При любой ошибке состояние не меняется, администратор
// может повторить ввод или вернуться на панель.
func (b *Bot) handleTransactionIDInput(message *tgbotapi.Message, userID string, conv *model.Conversation, text string) {
	if !txIDPattern.MatchString(text) {
		b.reply(message, formatIDFormatError(conv.Kind))
		return
	}

	var (
		status model.Status
		amount decimal.Decimal
		err    error
	)
	if conv.Kind == model.KindDeposit {
		var deposit *model.Deposit
		deposit, err = b.service.GetDeposit(b.ctx(), text)
		if err == nil {
			status, amount = deposit.Status, deposit.Amount
		}
	} else {
		var withdrawal *model.Withdrawal
		withdrawal, err = b.service.GetWithdrawal(b.ctx(), text)
		if err == nil {
			status, amount = withdrawal.Status, withdrawal.Amount
		}
	}

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			b.reply(message, formatNotFound(conv.Kind, text))
			return
		}
		b.logger.Error("failed to look up transaction",
			zap.String("user_id", userID),
			zap.String("tx_id", text),
			zap.Error(err))
		b.reply(message, locale.Get(locale.DefaultCode).Error)
		return
	}

	if status != model.StatusPending {
		b.reply(message, formatAlreadyProcessed(conv.Kind, text, status))
		return
	}

	conv.TxID = text
	conv.OriginalAmount = amount
	conv.Step = model.StepAwaitingAmount

	keyboard := b.getBackKeyboard(conv.Kind)
	b.replyWithKeyboard(message, formatAmountPrompt(conv), &keyboard)

	b.logger.Info("transaction id accepted",
		zap.String("user_id", userID),
		zap.String("kind", string(conv.Kind)),
		zap.String("tx_id", text))
}

// handleAmountInput шаг ввода суммы: строго положительное десятичное число.
// Введенная сумма может отличаться от исходной — это механизм ручной
// корректировки.
func (b *Bot) handleAmountInput(message *tgbotapi.Message, conv *model.Conversation, text string) {
	amount, err := decimal.NewFromString(text)
	if err != nil || !amount.IsPositive() {
		b.reply(message, amountFormatErrorText)
		return
	}

	conv.Amount = amount
	conv.Step = model.StepConfirming

	keyboard := b.getConfirmKeyboard(conv.Kind)
	b.replyWithKeyboard(message, formatConfirmSummary(conv), &keyboard)
}
