package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kapitalpro/invest_bot/internal/model"
	"github.com/kapitalpro/invest_bot/internal/repository"
)

// Store определяет интерфейс для работы с хранилищем данных.
type Store interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpsertUser(ctx context.Context, user *model.User) error
	CountUsers(ctx context.Context) (int64, error)

	GetDeposit(ctx context.Context, id string) (*model.Deposit, error)
	GetWithdrawal(ctx context.Context, id string) (*model.Withdrawal, error)
	ListPendingDeposits(ctx context.Context) ([]model.Deposit, error)
	ListPendingWithdrawals(ctx context.Context) ([]model.Withdrawal, error)
	CreateDeposit(ctx context.Context, deposit *model.Deposit) error
	CreateWithdrawal(ctx context.Context, withdrawal *model.Withdrawal) error
	UpdateDepositStatus(ctx context.Context, id string, from, to model.Status) (int64, error)
	UpdateWithdrawalStatus(ctx context.Context, id string, from, to model.Status) (int64, error)
	UpdateUserBalance(ctx context.Context, userID string, balance decimal.Decimal) error
}

// ApprovalService применяет заявки на пополнение и вывод к балансам
// пользователей. Хранилище остается единственным источником истины:
// статус и баланс перечитываются в момент применения.
type ApprovalService struct {
	store  Store
	logger *zap.Logger
}

func NewApprovalService(store Store, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		store:  store,
		logger: logger,
	}
}

// ApprovalResult итог успешного применения заявки.
type ApprovalResult struct {
	Kind            model.Kind
	TxID            string
	UserID          string
	Amount          decimal.Decimal
	OriginalAmount  decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
}

// ApproveDeposit применяет пополнение: переводит заявку в approved и
// увеличивает баланс владельца на amount. Применяется сумма, введенная
// администратором, а не исходная сумма заявки.
func (s *ApprovalService) ApproveDeposit(ctx context.Context, id string, amount decimal.Decimal) (*ApprovalResult, error) {
	deposit, err := s.store.GetDeposit(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("deposit %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch deposit %s: %w", id, err)
	}

	if deposit.Status != model.StatusPending {
		return nil, fmt.Errorf("deposit %s has status %s: %w", id, deposit.Status, ErrNotPending)
	}

	user, err := s.store.GetUser(ctx, deposit.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("deposit references missing user",
				zap.String("deposit_id", id),
				zap.String("user_id", deposit.UserID))
			return nil, fmt.Errorf("user %s for deposit %s: %w", deposit.UserID, id, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", deposit.UserID, err)
	}

	// Условное обновление: статус меняется только если заявка все еще
	// pending, поэтому параллельное подтверждение не засчитается дважды
	affected, err := s.store.UpdateDepositStatus(ctx, id, model.StatusPending, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to approve deposit %s: %w: %v", id, ErrMutationFailed, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("deposit %s was approved concurrently: %w", id, ErrNotPending)
	}

	newBalance := user.Balance.Add(amount)
	if err := s.store.UpdateUserBalance(ctx, user.ID, newBalance); err != nil {
		// Статус уже approved, баланс не изменен. Компенсация не
		// выполняется; запись требует ручной сверки.
		s.logger.Error("deposit approved but balance write failed",
			zap.String("deposit_id", id),
			zap.String("user_id", user.ID),
			zap.String("balance", user.Balance.String()),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update balance for deposit %s: %w: %v", id, ErrMutationFailed, err)
	}

	s.logger.Info("deposit approved",
		zap.String("deposit_id", id),
		zap.String("user_id", user.ID),
		zap.String("amount", amount.String()),
		zap.String("original_amount", deposit.Amount.String()),
		zap.String("new_balance", newBalance.String()))

	return &ApprovalResult{
		Kind:            model.KindDeposit,
		TxID:            id,
		UserID:          user.ID,
		Amount:          amount,
		OriginalAmount:  deposit.Amount,
		PreviousBalance: user.Balance,
		NewBalance:      newBalance,
	}, nil
}

// ApproveWithdrawal применяет вывод средств: проверяет достаточность
// баланса, переводит заявку в approved и уменьшает баланс на amount.
func (s *ApprovalService) ApproveWithdrawal(ctx context.Context, id string, amount decimal.Decimal) (*ApprovalResult, error) {
	withdrawal, err := s.store.GetWithdrawal(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("withdrawal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch withdrawal %s: %w", id, err)
	}

	if withdrawal.Status != model.StatusPending {
		return nil, fmt.Errorf("withdrawal %s has status %s: %w", id, withdrawal.Status, ErrNotPending)
	}

	user, err := s.store.GetUser(ctx, withdrawal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("withdrawal references missing user",
				zap.String("withdrawal_id", id),
				zap.String("user_id", withdrawal.UserID))
			return nil, fmt.Errorf("user %s for withdrawal %s: %w", withdrawal.UserID, id, ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", withdrawal.UserID, err)
	}

	if user.Balance.LessThan(amount) {
		return nil, fmt.Errorf("user %s has %s, requested %s: %w",
			user.ID, user.Balance, amount, ErrInsufficientBalance)
	}

	affected, err := s.store.UpdateWithdrawalStatus(ctx, id, model.StatusPending, model.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to approve withdrawal %s: %w: %v", id, ErrMutationFailed, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("withdrawal %s was approved concurrently: %w", id, ErrNotPending)
	}

	newBalance := user.Balance.Sub(amount)
	if err := s.store.UpdateUserBalance(ctx, user.ID, newBalance); err != nil {
		s.logger.Error("withdrawal approved but balance write failed",
			zap.String("withdrawal_id", id),
			zap.String("user_id", user.ID),
			zap.String("balance", user.Balance.String()),
			zap.String("amount", amount.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update balance for withdrawal %s: %w: %v", id, ErrMutationFailed, err)
	}

	s.logger.Info("withdrawal approved",
		zap.String("withdrawal_id", id),
		zap.String("user_id", user.ID),
		zap.String("amount", amount.String()),
		zap.String("original_amount", withdrawal.Amount.String()),
		zap.String("new_balance", newBalance.String()))

	return &ApprovalResult{
		Kind:            model.KindWithdrawal,
		TxID:            id,
		UserID:          user.ID,
		Amount:          amount,
		OriginalAmount:  withdrawal.Amount,
		PreviousBalance: user.Balance,
		NewBalance:      newBalance,
	}, nil
}

// GetDeposit возвращает заявку на пополнение для проверки на шаге ввода
// идентификатора.
func (s *ApprovalService) GetDeposit(ctx context.Context, id string) (*model.Deposit, error) {
	deposit, err := s.store.GetDeposit(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("deposit %s: %w", id, ErrNotFound)
	}
	return deposit, err
}

// GetWithdrawal возвращает заявку на вывод для проверки на шаге ввода
// идентификатора.
func (s *ApprovalService) GetWithdrawal(ctx context.Context, id string) (*model.Withdrawal, error) {
	withdrawal, err := s.store.GetWithdrawal(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("withdrawal %s: %w", id, ErrNotFound)
	}
	return withdrawal, err
}

// RegisterUser создает пользователя при первом контакте или обновляет
// отображаемые поля существующего. Баланс и дата создания сохраняются.
func (s *ApprovalService) RegisterUser(ctx context.Context, user *model.User) error {
	now := time.Now()

	existing, err := s.store.GetUser(ctx, user.ID)
	switch {
	case err == nil:
		user.Balance = existing.Balance
		user.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		user.Balance = decimal.Zero
		user.CreatedAt = now
	default:
		return fmt.Errorf("failed to check user %s: %w", user.ID, err)
	}
	user.UpdatedAt = now

	if err := s.store.UpsertUser(ctx, user); err != nil {
		return fmt.Errorf("failed to register user %s: %w", user.ID, err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return nil
}

// SubmitDeposit создает ожидающую заявку на пополнение.
func (s *ApprovalService) SubmitDeposit(ctx context.Context, deposit *model.Deposit) error {
	now := time.Now()
	deposit.GenerateID()
	deposit.Status = model.StatusPending
	deposit.CreatedAt = now
	deposit.UpdatedAt = now

	if err := s.store.CreateDeposit(ctx, deposit); err != nil {
		return fmt.Errorf("failed to submit deposit: %w", err)
	}

	s.logger.Info("deposit submitted",
		zap.String("deposit_id", deposit.ID),
		zap.String("user_id", deposit.UserID),
		zap.String("amount", deposit.Amount.String()))
	return nil
}

// SubmitWithdrawal создает ожидающую заявку на вывод. Заявка сверх текущего
// баланса отклоняется сразу; авторитетная проверка повторяется при
// применении.
func (s *ApprovalService) SubmitWithdrawal(ctx context.Context, withdrawal *model.Withdrawal) error {
	user, err := s.store.GetUser(ctx, withdrawal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user %s: %w", withdrawal.UserID, ErrUserNotFound)
		}
		return fmt.Errorf("failed to fetch user %s: %w", withdrawal.UserID, err)
	}

	if user.Balance.LessThan(withdrawal.Amount) {
		return fmt.Errorf("user %s has %s, requested %s: %w",
			user.ID, user.Balance, withdrawal.Amount, ErrInsufficientBalance)
	}

	now := time.Now()
	withdrawal.GenerateID()
	withdrawal.Status = model.StatusPending
	withdrawal.CreatedAt = now
	withdrawal.UpdatedAt = now

	if err := s.store.CreateWithdrawal(ctx, withdrawal); err != nil {
		return fmt.Errorf("failed to submit withdrawal: %w", err)
	}

	s.logger.Info("withdrawal submitted",
		zap.String("withdrawal_id", withdrawal.ID),
		zap.String("user_id", withdrawal.UserID),
		zap.String("amount", withdrawal.Amount.String()))
	return nil
}
