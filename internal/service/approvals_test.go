package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kapitalpro/invest_bot/internal/model"
	"github.com/kapitalpro/invest_bot/internal/repository"
)

type mockStore struct {
	users       map[string]*model.User
	deposits    map[string]*model.Deposit
	withdrawals map[string]*model.Withdrawal

	usersErr   error
	balanceErr error
	statusErr  error
	// при установке переопределяет число затронутых записей условного
	// обновления статуса
	statusAffected *int64

	balanceWrites int
	createdDeps   []*model.Deposit
	createdWdrs   []*model.Withdrawal
}

func newMockStore() *mockStore {
	return &mockStore{
		users:       make(map[string]*model.User),
		deposits:    make(map[string]*model.Deposit),
		withdrawals: make(map[string]*model.Withdrawal),
	}
}

func (m *mockStore) GetUser(_ context.Context, id string) (*model.User, error) {
	if m.usersErr != nil {
		return nil, m.usersErr
	}
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *mockStore) UpsertUser(_ context.Context, user *model.User) error {
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *mockStore) CountUsers(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockStore) GetDeposit(_ context.Context, id string) (*model.Deposit, error) {
	deposit, ok := m.deposits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *deposit
	return &copy, nil
}

func (m *mockStore) GetWithdrawal(_ context.Context, id string) (*model.Withdrawal, error) {
	withdrawal, ok := m.withdrawals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *withdrawal
	return &copy, nil
}

func (m *mockStore) ListPendingDeposits(_ context.Context) ([]model.Deposit, error) {
	var out []model.Deposit
	for _, d := range m.deposits {
		if d.Status == model.StatusPending {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockStore) ListPendingWithdrawals(_ context.Context) ([]model.Withdrawal, error) {
	var out []model.Withdrawal
	for _, w := range m.withdrawals {
		if w.Status == model.StatusPending {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *mockStore) CreateDeposit(_ context.Context, deposit *model.Deposit) error {
	copy := *deposit
	m.deposits[deposit.ID] = &copy
	m.createdDeps = append(m.createdDeps, &copy)
	return nil
}

func (m *mockStore) CreateWithdrawal(_ context.Context, withdrawal *model.Withdrawal) error {
	copy := *withdrawal
	m.withdrawals[withdrawal.ID] = &copy
	m.createdWdrs = append(m.createdWdrs, &copy)
	return nil
}

func (m *mockStore) UpdateDepositStatus(_ context.Context, id string, from, to model.Status) (int64, error) {
	if m.statusErr != nil {
		return 0, m.statusErr
	}
	if m.statusAffected != nil {
		return *m.statusAffected, nil
	}
	deposit, ok := m.deposits[id]
	if !ok || deposit.Status != from {
		return 0, nil
	}
	deposit.Status = to
	deposit.UpdatedAt = time.Now()
	return 1, nil
}

func (m *mockStore) UpdateWithdrawalStatus(_ context.Context, id string, from, to model.Status) (int64, error) {
	if m.statusErr != nil {
		return 0, m.statusErr
	}
	if m.statusAffected != nil {
		return *m.statusAffected, nil
	}
	withdrawal, ok := m.withdrawals[id]
	if !ok || withdrawal.Status != from {
		return 0, nil
	}
	withdrawal.Status = to
	withdrawal.UpdatedAt = time.Now()
	return 1, nil
}

func (m *mockStore) UpdateUserBalance(_ context.Context, userID string, balance decimal.Decimal) error {
	if m.balanceErr != nil {
		return m.balanceErr
	}
	user, ok := m.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	user.Balance = balance
	user.UpdatedAt = time.Now()
	m.balanceWrites++
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixtureStore() *mockStore {
	store := newMockStore()
	store.users["7"] = &model.User{
		ID:        "7",
		Username:  "investor",
		Balance:   dec("10.00"),
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	store.deposits["ABC123"] = &model.Deposit{
		ID:     "ABC123",
		UserID: "7",
		Amount: dec("50.00"),
		Status: model.StatusPending,
	}
	store.withdrawals["WTH001"] = &model.Withdrawal{
		ID:      "WTH001",
		UserID:  "7",
		Amount:  dec("25.00"),
		Status:  model.StatusPending,
		Address: "TXhq9e3pkmUvcDbF7GYsW2aQeJnLr5vB1sKxYtZw",
	}
	return store
}

func TestApproveDepositAppliesAdminAmount(t *testing.T) {
	store := fixtureStore()
	svc := NewApprovalService(store, nil)

	// Сумма администратора отличается от исходной: применяется именно она
	result, err := svc.ApproveDeposit(context.Background(), "ABC123", dec("75.50"))
	require.NoError(t, err)

	require.Equal(t, model.KindDeposit, result.Kind)
	require.Equal(t, "ABC123", result.TxID)
	require.True(t, result.OriginalAmount.Equal(dec("50.00")))
	require.True(t, result.PreviousBalance.Equal(dec("10.00")))
	require.True(t, result.NewBalance.Equal(dec("85.50")))

	require.Equal(t, model.StatusApproved, store.deposits["ABC123"].Status)
	require.True(t, store.users["7"].Balance.Equal(dec("85.50")))
}

func TestApproveDepositTwiceAppliesOnce(t *testing.T) {
	store := fixtureStore()
	svc := NewApprovalService(store, nil)

	_, err := svc.ApproveDeposit(context.Background(), "ABC123", dec("50.00"))
	require.NoError(t, err)

	_, err = svc.ApproveDeposit(context.Background(), "ABC123", dec("50.00"))
	require.ErrorIs(t, err, ErrNotPending)

	require.Equal(t, 1, store.balanceWrites)
	require.True(t, store.users["7"].Balance.Equal(dec("60.00")))
}

func TestApproveDepositNotFound(t *testing.T) {
	store := fixtureStore()
	svc := NewApprovalService(store, nil)

	_, err := svc.ApproveDeposit(context.Background(), "MISSING1", dec("10.00"))
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, store.balanceWrites)
}

func TestApproveDepositUserMissing(t *testing.T) {
	store := fixtureStore()
	store.deposits["ORPHAN1"] = &model.Deposit{
		ID:     "ORPHAN1",
		UserID: "ghost",
		Amount: dec("5.00"),
		Status: model.StatusPending,
	}
	svc := NewApprovalService(store, nil)

	_, err := svc.ApproveDeposit(context.Background(), "ORPHAN1", dec("5.00"))
	require.ErrorIs(t, err, ErrUserNotFound)
	// Хранилище не изменено
	require.Equal(t, model.StatusPending, store.deposits["ORPHAN1"].Status)
	require.Zero(t, store.balanceWrites)
}

func TestApproveDepositLostRace(t *testing.T) {
	store := fixtureStore()
	affected := int64(0)
	store.statusAffected = &affected
	svc := NewApprovalService(store, nil)

	// Условное обновление не затронуло записей: заявку подтвердили
	// параллельно между проверкой и записью
	_, err := svc.ApproveDeposit(context.Background(), "ABC123", dec("50.00"))
	require.ErrorIs(t, err, ErrNotPending)
	require.Zero(t, store.balanceWrites)
}

func TestApproveDepositBalanceWriteFails(t *testing.T) {
	store := fixtureStore()
	store.balanceErr = errors.New("connection reset")
	svc := NewApprovalService(store, nil)

	_, err := svc.ApproveDeposit(context.Background(), "ABC123", dec("50.00"))
	require.ErrorIs(t, err, ErrMutationFailed)

	// Принятый разрыв: статус уже approved, баланс не изменен
	require.Equal(t, model.StatusApproved, store.deposits["ABC123"].Status)
	require.True(t, store.users["7"].Balance.Equal(dec("10.00")))
}

func TestApproveWithdrawalArithmetic(t *testing.T) {
	store := fixtureStore()
	store.users["7"].Balance = dec("100.00")
	svc := NewApprovalService(store, nil)

	result, err := svc.ApproveWithdrawal(context.Background(), "WTH001", dec("40.00"))
	require.NoError(t, err)

	require.True(t, result.NewBalance.Equal(dec("60.00")))
	require.Equal(t, model.StatusApproved, store.withdrawals["WTH001"].Status)
	require.True(t, store.users["7"].Balance.Equal(dec("60.00")))
}

func TestApproveWithdrawalInsufficientBalance(t *testing.T) {
	store := fixtureStore()
	store.users["7"].Balance = dec("40.00")
	svc := NewApprovalService(store, nil)

	_, err := svc.ApproveWithdrawal(context.Background(), "WTH001", dec("100.00"))
	require.ErrorIs(t, err, ErrInsufficientBalance)

	require.Equal(t, model.StatusPending, store.withdrawals["WTH001"].Status)
	require.True(t, store.users["7"].Balance.Equal(dec("40.00")))
	require.Zero(t, store.balanceWrites)
}

func TestApproveWithdrawalTwiceAppliesOnce(t *testing.T) {
	store := fixtureStore()
	store.users["7"].Balance = dec("100.00")
	svc := NewApprovalService(store, nil)

	_, err := svc.ApproveWithdrawal(context.Background(), "WTH001", dec("25.00"))
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(context.Background(), "WTH001", dec("25.00"))
	require.ErrorIs(t, err, ErrNotPending)
	require.Equal(t, 1, store.balanceWrites)
}

func TestRegisterUserPreservesBalanceAndCreatedAt(t *testing.T) {
	store := fixtureStore()
	created := store.users["7"].CreatedAt
	svc := NewApprovalService(store, nil)

	err := svc.RegisterUser(context.Background(), &model.User{
		ID:        "7",
		FirstName: "New",
		LastName:  "Name",
		Username:  "renamed",
	})
	require.NoError(t, err)

	updated := store.users["7"]
	require.Equal(t, "renamed", updated.Username)
	require.True(t, updated.Balance.Equal(dec("10.00")))
	require.Equal(t, created, updated.CreatedAt)
}

func TestRegisterUserCreatesWithZeroBalance(t *testing.T) {
	store := fixtureStore()
	svc := NewApprovalService(store, nil)

	err := svc.RegisterUser(context.Background(), &model.User{ID: "99", Username: "fresh"})
	require.NoError(t, err)

	created := store.users["99"]
	require.True(t, created.Balance.IsZero())
	require.False(t, created.CreatedAt.IsZero())
}

func TestSubmitDepositGeneratesEnterableID(t *testing.T) {
	store := fixtureStore()
	svc := NewApprovalService(store, nil)

	deposit := &model.Deposit{UserID: "7", Amount: dec("30.00"), Network: "trc20"}
	err := svc.SubmitDeposit(context.Background(), deposit)
	require.NoError(t, err)

	// Идентификатор должен проходить проверку формата при ручном вводе
	require.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`), deposit.ID)
	require.Equal(t, model.StatusPending, store.deposits[deposit.ID].Status)
}

func TestSubmitWithdrawalRejectsOverBalance(t *testing.T) {
	store := fixtureStore()
	svc := NewApprovalService(store, nil)

	err := svc.SubmitWithdrawal(context.Background(), &model.Withdrawal{
		UserID: "7",
		Amount: dec("1000.00"),
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Empty(t, store.createdWdrs)
}

func TestSubmitWithdrawalWithinBalance(t *testing.T) {
	store := fixtureStore()
	svc := NewApprovalService(store, nil)

	withdrawal := &model.Withdrawal{UserID: "7", Amount: dec("10.00"), Address: "addr"}
	err := svc.SubmitWithdrawal(context.Background(), withdrawal)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, store.withdrawals[withdrawal.ID].Status)
}
