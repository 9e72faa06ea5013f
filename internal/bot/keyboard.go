package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kapitalpro/invest_bot/internal/locale"
	"github.com/kapitalpro/invest_bot/internal/model"
)

// getWelcomeKeyboard строит клавиатуру приветственной карточки: выбор языка
// с отметкой текущего и кнопки перехода в приложение и поддержку.
func (b *Bot) getWelcomeKeyboard(selected string) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for _, code := range locale.Codes {
		lang := locale.Get(code)
		label := lang.Name
		if code == selected {
			label += " ✅"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "language_"+code))
		if len(row) == 2 {
			buttons = append(buttons, row)
			row = nil
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}

	buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL(locale.ButtonLaunchApp, b.cfg.WebAppURL),
		tgbotapi.NewInlineKeyboardButtonURL(locale.ButtonContact, b.cfg.ContactURL),
	))

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

// getAdminKeyboard три действия панели администратора.
func (b *Bot) getAdminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Deposit", "admin_deposit"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💸 Withdraw", "admin_withdraw"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟡 Pending Transactions", "admin_pending"),
		),
	)
}

// getBackKeyboard кнопка возврата на панель из любого шага диалога.
func (b *Bot) getBackKeyboard(kind model.Kind) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Admin", string(kind)+"_back"),
		),
	)
}

// getConfirmKeyboard два допустимых действия на шаге подтверждения.
func (b *Bot) getConfirmKeyboard(kind model.Kind) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Complete", string(kind)+"_complete"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Admin", string(kind)+"_back"),
		),
	)
}

// getPendingKeyboard действия под списком ожидающих заявок.
func (b *Bot) getPendingKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Process Deposits", "admin_deposit"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Process Withdrawals", "admin_withdraw"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Admin", "admin_back"),
		),
	)
}
