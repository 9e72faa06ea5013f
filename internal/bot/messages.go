package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kapitalpro/invest_bot/internal/model"
	"github.com/kapitalpro/invest_bot/internal/service"
)

const (
	dashboardText = "🔧 **Admin Dashboard**\n\n" +
		"📊 **Transaction Management:**\n" +
		"Select an option below to manage transactions.\n\n" +
		"✅ **Available Features:**\n" +
		"• 💰 Deposit - Process pending deposits\n" +
		"• 💸 Withdraw - Process pending withdrawals\n" +
		"• 🟡 Pending Transactions - View all pending transactions"

	accessDeniedText = "❌ **Access Denied**\n\n" +
		"You don't have permission to access admin features.\n\n" +
		"This feature is restricted to authorized administrators only."

	confirmingNoticeText = "⏳ **Transaction Ready for Confirmation**\n\n" +
		"You have entered an amount and are ready to complete the transaction.\n\n" +
		"🎯 **Please use the buttons in the previous message:**\n" +
		"• ✅ **Complete** - to approve the transaction\n" +
		"• 🔙 **Back to Admin** - to cancel and return to dashboard\n\n" +
		"⚠️ **Do not send more text messages at this stage.**"

	invalidStateText = "❌ Invalid state. Please start over with /adminDashboard"
)

func (b *Bot) ctx() context.Context {
	return context.Background()
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// reply отвечает на сообщение администратора в треде.
func (b *Bot) reply(message *tgbotapi.Message, text string) {
	b.replyWithKeyboard(message, text, nil)
}

func (b *Bot) replyWithKeyboard(message *tgbotapi.Message, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyToMessageID = message.MessageID
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send reply", zap.Int64("chat_id", message.Chat.ID), zap.Error(err))
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	edit.ReplyMarkup = keyboard
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("failed to edit message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// answerCallback отвечает на callback, чтобы убрать индикатор загрузки.
func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Error("failed to answer callback", zap.Error(err))
	}
}

func kindTitle(kind model.Kind) string {
	if kind == model.KindDeposit {
		return "Deposit"
	}
	return "Withdrawal"
}

func kindEmoji(kind model.Kind) string {
	if kind == model.KindDeposit {
		return "💰"
	}
	return "💸"
}

func formatIDPrompt(kind model.Kind) string {
	example := "ABC123"
	if kind == model.KindWithdrawal {
		example = "WTH123"
	}
	return fmt.Sprintf("%s **%s Management**\n\n"+
		"Please enter the **%s ID** you want to process:\n\n"+
		"📝 **Format:** Enter the %s ID (e.g., `%s`)\n\n"+
		"⚠️ **Note:** Make sure the %s ID exists and is in pending status.",
		kindEmoji(kind), kindTitle(kind),
		kindTitle(kind),
		strings.ToLower(kindTitle(kind)), example,
		strings.ToLower(kindTitle(kind)))
}

func formatIDFormatError(kind model.Kind) string {
	return fmt.Sprintf("❌ **Invalid %s ID Format**\n\n"+
		"Please enter a valid %s ID (3-20 alphanumeric characters).",
		kindTitle(kind), strings.ToLower(kindTitle(kind)))
}

func formatNotFound(kind model.Kind, id string) string {
	return fmt.Sprintf("❌ **%s Not Found**\n\n"+
		"%s ID `%s` was not found in the database.\n\n"+
		"Please verify the %s ID and try again.",
		kindTitle(kind), kindTitle(kind), id, strings.ToLower(kindTitle(kind)))
}

func formatAlreadyProcessed(kind model.Kind, id string, status model.Status) string {
	return fmt.Sprintf("❌ **%s Already Processed**\n\n"+
		"%s ID `%s` has status: **%s**\n\n"+
		"Only pending %ss can be processed.",
		kindTitle(kind), kindTitle(kind), id, titleStatus(status),
		strings.ToLower(kindTitle(kind)))
}

func titleStatus(status model.Status) string {
	s := string(status)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatAmountPrompt(conv *model.Conversation) string {
	return fmt.Sprintf("%s **%s Processing**\n\n"+
		"✅ **%s Found:**\n"+
		"• ID: `%s`\n"+
		"• Original Amount: $%s\n"+
		"• Status: Pending\n\n"+
		"**Enter the amount to approve:**",
		kindEmoji(conv.Kind), kindTitle(conv.Kind),
		kindTitle(conv.Kind),
		conv.TxID, conv.OriginalAmount.StringFixed(2))
}

const amountFormatErrorText = "❌ **Invalid Amount Format**\n\n" +
	"Please enter a valid positive number (e.g., `100.50` or `100`)."

func formatConfirmSummary(conv *model.Conversation) string {
	effect := fmt.Sprintf("Update user balance by $%s", conv.Amount.StringFixed(2))
	if conv.Kind == model.KindWithdrawal {
		effect = fmt.Sprintf("Deduct $%s from user balance", conv.Amount.StringFixed(2))
	}
	return fmt.Sprintf("%s **Confirm %s Approval**\n\n"+
		"📋 **%s Details:**\n"+
		"• %s ID: `%s`\n"+
		"• Original Amount: $%s\n"+
		"• Amount to Approve: $%s\n\n"+
		"⚠️ **This action will:**\n"+
		"• Approve the %s\n"+
		"• %s\n"+
		"• Mark %s as completed\n\n"+
		"🎯 **Next Step:** Use the buttons below to complete or cancel.",
		kindEmoji(conv.Kind), kindTitle(conv.Kind),
		kindTitle(conv.Kind),
		kindTitle(conv.Kind), conv.TxID,
		conv.OriginalAmount.StringFixed(2),
		conv.Amount.StringFixed(2),
		strings.ToLower(kindTitle(conv.Kind)),
		effect,
		strings.ToLower(kindTitle(conv.Kind)))
}

func formatApprovalSuccess(result *service.ApprovalResult) string {
	balanceLine := "💰 The user's balance has been updated accordingly."
	if result.Kind == model.KindWithdrawal {
		balanceLine = "💰 The user's balance has been deducted accordingly."
	}
	return fmt.Sprintf("✅ **%s Completed Successfully!**\n\n"+
		"📋 **Details:**\n"+
		"• %s ID: `%s`\n"+
		"• Amount Approved: $%s\n"+
		"• Previous Balance: $%s\n"+
		"• New Balance: $%s\n"+
		"• Status: ✅ Approved\n\n%s",
		kindTitle(result.Kind),
		kindTitle(result.Kind), result.TxID,
		result.Amount.StringFixed(2),
		result.PreviousBalance.StringFixed(2),
		result.NewBalance.StringFixed(2),
		balanceLine)
}

func formatApprovalFailure(kind model.Kind, conv *model.Conversation, err error) string {
	reason := "Database error"
	switch {
	case errors.Is(err, service.ErrNotFound):
		reason = fmt.Sprintf("%s ID not found", kindTitle(kind))
	case errors.Is(err, service.ErrNotPending):
		reason = fmt.Sprintf("%s already processed", kindTitle(kind))
	case errors.Is(err, service.ErrInsufficientBalance):
		reason = "Insufficient user balance"
	case errors.Is(err, service.ErrUserNotFound):
		reason = "User record is missing"
	}
	return fmt.Sprintf("❌ **%s Processing Failed**\n\n"+
		"📋 **Details:**\n"+
		"• %s ID: `%s`\n"+
		"• Amount: $%s\n\n"+
		"⚠️ **Reason:** %s\n\n"+
		"Please verify the %s ID and try again.",
		kindTitle(kind),
		kindTitle(kind), conv.TxID,
		conv.Amount.StringFixed(2),
		reason,
		strings.ToLower(kindTitle(kind)))
}

// formatPendingOverview собирает текст сводки ожидающих заявок.
// Списки усечены до первых 5 записей на каждый вид.
func formatPendingOverview(overview *service.PendingOverview) string {
	var sb strings.Builder

	sb.WriteString("🟡 **Pending Transactions**\n\n")
	sb.WriteString("📊 **Overview:**\n")
	fmt.Fprintf(&sb, "• Total Pending: **%d**\n", overview.Stats.TotalPending)
	fmt.Fprintf(&sb, "• Pending Deposits: **%d** ($%s)\n",
		overview.Stats.PendingDeposits, overview.Stats.DepositTotal.StringFixed(2))
	fmt.Fprintf(&sb, "• Pending Withdrawals: **%d** ($%s)\n",
		overview.Stats.PendingWithdrawals, overview.Stats.WithdrawalTotal.StringFixed(2))
	fmt.Fprintf(&sb, "• Total Users: **%d**\n\n", overview.Stats.TotalUsers)

	if len(overview.Deposits) == 0 && len(overview.Withdrawals) == 0 {
		sb.WriteString("✅ **No pending transactions found!**\n\nAll transactions have been processed.")
		return sb.String()
	}

	if len(overview.Deposits) > 0 {
		fmt.Fprintf(&sb, "💰 **Pending Deposits (%d)**\n", len(overview.Deposits))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
		for i, entry := range truncateEntries(overview.Deposits) {
			fmt.Fprintf(&sb, "%d. **ID:** `%s`\n", i+1, entry.ID)
			fmt.Fprintf(&sb, "   👤 **User:** %s\n", entry.UserName)
			fmt.Fprintf(&sb, "   💵 **Amount:** $%s %s\n", entry.Amount.StringFixed(2), entry.Network)
			fmt.Fprintf(&sb, "   ⏰ **Time:** %s\n\n", entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		if extra := len(overview.Deposits) - maxListEntries; extra > 0 {
			fmt.Fprintf(&sb, "*... and %d more deposits*\n\n", extra)
		}
	}

	if len(overview.Withdrawals) > 0 {
		fmt.Fprintf(&sb, "💸 **Pending Withdrawals (%d)**\n", len(overview.Withdrawals))
		sb.WriteString(strings.Repeat("─", 40) + "\n")
		for i, entry := range truncateEntries(overview.Withdrawals) {
			fmt.Fprintf(&sb, "%d. **ID:** `%s`\n", i+1, entry.ID)
			fmt.Fprintf(&sb, "   👤 **User:** %s\n", entry.UserName)
			fmt.Fprintf(&sb, "   💵 **Amount:** $%s %s\n", entry.Amount.StringFixed(2), entry.Network)
			fmt.Fprintf(&sb, "   📍 **Address:** `%s`\n", shortAddress(entry.Address))
			fmt.Fprintf(&sb, "   ⏰ **Time:** %s\n\n", entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		if extra := len(overview.Withdrawals) - maxListEntries; extra > 0 {
			fmt.Fprintf(&sb, "*... and %d more withdrawals*\n\n", extra)
		}
	}

	sb.WriteString("💡 **Quick Actions:**\n")
	sb.WriteString("• Use 💰 **Process Deposits** to approve deposits\n")
	sb.WriteString("• Use 💸 **Process Withdrawals** to approve withdrawals")
	return sb.String()
}

const maxListEntries = 5

func truncateEntries(entries []service.PendingEntry) []service.PendingEntry {
	if len(entries) > maxListEntries {
		return entries[:maxListEntries]
	}
	return entries
}

func shortAddress(address string) string {
	if address == "" {
		return "Unknown"
	}
	if len(address) > 20 {
		return address[:20] + "..."
	}
	return address
}
