package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/supabase-community/supabase-go"

	"github.com/kapitalpro/invest_bot/internal/model"
)

const (
	usersTable       = "users"
	depositsTable    = "deposits"
	withdrawalsTable = "withdrawals"
)

type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	data, _, err := r.client.From(usersTable).
		Select("*", "", false).
		Eq("user_id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user %s: %w", id, err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

func (r *SupabaseRepository) UpsertUser(ctx context.Context, user *model.User) error {
	_, _, err := r.client.From(usersTable).
		Insert(user, true, "user_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

func (r *SupabaseRepository) CountUsers(ctx context.Context) (int64, error) {
	_, count, err := r.client.From(usersTable).
		Select("user_id", "exact", false).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *SupabaseRepository) GetDeposit(ctx context.Context, id string) (*model.Deposit, error) {
	data, _, err := r.client.From(depositsTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit %s: %w", id, err)
	}

	var deposits []model.Deposit
	if err := json.Unmarshal(data, &deposits); err != nil {
		return nil, fmt.Errorf("failed to parse deposit %s: %w", id, err)
	}
	if len(deposits) == 0 {
		return nil, ErrNotFound
	}
	return &deposits[0], nil
}

func (r *SupabaseRepository) GetWithdrawal(ctx context.Context, id string) (*model.Withdrawal, error) {
	data, _, err := r.client.From(withdrawalsTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal %s: %w", id, err)
	}

	var withdrawals []model.Withdrawal
	if err := json.Unmarshal(data, &withdrawals); err != nil {
		return nil, fmt.Errorf("failed to parse withdrawal %s: %w", id, err)
	}
	if len(withdrawals) == 0 {
		return nil, ErrNotFound
	}
	return &withdrawals[0], nil
}

// ListPendingDeposits возвращает ожидающие пополнения. Порядок записей
// определяется хранилищем, явная сортировка не накладывается.
func (r *SupabaseRepository) ListPendingDeposits(ctx context.Context) ([]model.Deposit, error) {
	data, _, err := r.client.From(depositsTable).
		Select("*", "", false).
		Eq("status", string(model.StatusPending)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending deposits: %w", err)
	}

	var deposits []model.Deposit
	if err := json.Unmarshal(data, &deposits); err != nil {
		return nil, fmt.Errorf("failed to parse pending deposits: %w", err)
	}
	return deposits, nil
}

// ListPendingWithdrawals возвращает ожидающие выводы средств.
func (r *SupabaseRepository) ListPendingWithdrawals(ctx context.Context) ([]model.Withdrawal, error) {
	data, _, err := r.client.From(withdrawalsTable).
		Select("*", "", false).
		Eq("status", string(model.StatusPending)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}

	var withdrawals []model.Withdrawal
	if err := json.Unmarshal(data, &withdrawals); err != nil {
		return nil, fmt.Errorf("failed to parse pending withdrawals: %w", err)
	}
	return withdrawals, nil
}

func (r *SupabaseRepository) CreateDeposit(ctx context.Context, deposit *model.Deposit) error {
	_, _, err := r.client.From(depositsTable).
		Insert(deposit, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) CreateWithdrawal(ctx context.Context, withdrawal *model.Withdrawal) error {
	_, _, err := r.client.From(withdrawalsTable).
		Insert(withdrawal, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

// UpdateDepositStatus переводит заявку из статуса from в to. Обновление
// условное: фильтр по прежнему статусу выполняется самим хранилищем, поэтому
// два конкурирующих подтверждения не могут сработать одновременно.
// Возвращает число затронутых записей: 0 означает, что заявка уже не в from.
func (r *SupabaseRepository) UpdateDepositStatus(ctx context.Context, id string, from, to model.Status) (int64, error) {
	payload := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	_, count, err := r.client.From(depositsTable).
		Update(payload, "", "exact").
		Eq("id", id).
		Eq("status", string(from)).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to update deposit %s status: %w", id, err)
	}
	return count, nil
}

// UpdateWithdrawalStatus переводит заявку на вывод из статуса from в to.
// Семантика идентична UpdateDepositStatus.
func (r *SupabaseRepository) UpdateWithdrawalStatus(ctx context.Context, id string, from, to model.Status) (int64, error) {
	payload := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	_, count, err := r.client.From(withdrawalsTable).
		Update(payload, "", "exact").
		Eq("id", id).
		Eq("status", string(from)).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to update withdrawal %s status: %w", id, err)
	}
	return count, nil
}

// UpdateUserBalance перезаписывает баланс пользователя. Вызывается только
// протоколом применения заявок.
func (r *SupabaseRepository) UpdateUserBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	payload := map[string]interface{}{
		"balance":    balance,
		"updated_at": time.Now(),
	}
	_, _, err := r.client.From(usersTable).
		Update(payload, "", "").
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update balance for user %s: %w", userID, err)
	}
	return nil
}
