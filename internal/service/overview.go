package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PendingEntry строка списка ожидающих заявок с уже разрешенным именем
// пользователя.
type PendingEntry struct {
	ID        string
	UserName  string
	Amount    decimal.Decimal
	Network   string
	Address   string
	CreatedAt time.Time
}

// OverviewStats сводные показатели для панели администратора.
type OverviewStats struct {
	PendingDeposits    int
	PendingWithdrawals int
	TotalPending       int
	DepositTotal       decimal.Decimal
	WithdrawalTotal    decimal.Decimal
	TotalUsers         int64
}

// PendingOverview агрегированное состояние ожидающих заявок.
// Списки идут в порядке итерации хранилища.
type PendingOverview struct {
	Stats       OverviewStats
	Deposits    []PendingEntry
	Withdrawals []PendingEntry
}

// GetPendingOverview собирает ожидающие пополнения и выводы, их суммы и
// количество пользователей. Данные только читаются.
func (s *ApprovalService) GetPendingOverview(ctx context.Context) (*PendingOverview, error) {
	deposits, err := s.store.ListPendingDeposits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending deposits: %w", err)
	}

	withdrawals, err := s.store.ListPendingWithdrawals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending withdrawals: %w", err)
	}

	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	overview := &PendingOverview{
		Stats: OverviewStats{
			PendingDeposits:    len(deposits),
			PendingWithdrawals: len(withdrawals),
			TotalPending:       len(deposits) + len(withdrawals),
			DepositTotal:       decimal.Zero,
			WithdrawalTotal:    decimal.Zero,
			TotalUsers:         totalUsers,
		},
	}

	for _, d := range deposits {
		overview.Stats.DepositTotal = overview.Stats.DepositTotal.Add(d.Amount)
		overview.Deposits = append(overview.Deposits, PendingEntry{
			ID:        d.ID,
			UserName:  s.resolveUserName(ctx, d.UserID),
			Amount:    d.Amount,
			Network:   networkLabel(d.NetworkName, d.Network),
			CreatedAt: d.CreatedAt,
		})
	}

	for _, w := range withdrawals {
		overview.Stats.WithdrawalTotal = overview.Stats.WithdrawalTotal.Add(w.Amount)
		overview.Withdrawals = append(overview.Withdrawals, PendingEntry{
			ID:        w.ID,
			UserName:  s.resolveUserName(ctx, w.UserID),
			Amount:    w.Amount,
			Network:   networkLabel(w.NetworkName, w.Network),
			Address:   w.Address,
			CreatedAt: w.CreatedAt,
		})
	}

	return overview, nil
}

// resolveUserName разрешает имя владельца заявки; при любой ошибке
// используется запасной вариант User {id}.
func (s *ApprovalService) resolveUserName(ctx context.Context, userID string) string {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to resolve transaction user",
			zap.String("user_id", userID),
			zap.Error(err))
		return fmt.Sprintf("User %s", userID)
	}
	return user.DisplayName()
}

func networkLabel(name, code string) string {
	if name != "" {
		return name
	}
	if code != "" {
		return code
	}
	return "Unknown"
}
