package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status статус заявки в хранилище.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Kind различает пополнения и выводы средств.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Deposit заявка на пополнение баланса.
type Deposit struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	UserUsername   string          `json:"user_username,omitempty"`
	UserFirstName  string          `json:"user_first_name,omitempty"`
	UserLastName   string          `json:"user_last_name,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Status         Status          `json:"status"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	Network        string          `json:"network"`
	NetworkName    string          `json:"network_name"`
	CreatedAt      time.Time       `json:"created_at,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at,omitempty"`
}

// Withdrawal заявка на вывод средств.
type Withdrawal struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	UserUsername  string          `json:"user_username,omitempty"`
	UserFirstName string          `json:"user_first_name,omitempty"`
	UserLastName  string          `json:"user_last_name,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        Status          `json:"status"`
	Network       string          `json:"network"`
	NetworkName   string          `json:"network_name"`
	Address       string          `json:"withdrawal_address"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at,omitempty"`
}

// GenerateID генерирует новый идентификатор заявки, если он еще не установлен.
func (d *Deposit) GenerateID() {
	if d.ID == "" {
		d.ID = newTransactionID()
	}
}

// GenerateID генерирует новый идентификатор заявки, если он еще не установлен.
func (w *Withdrawal) GenerateID() {
	if w.ID == "" {
		w.ID = newTransactionID()
	}
}

// Идентификаторы заявок вводятся администратором вручную, поэтому
// укорачиваем UUID до 20 алфавитно-цифровых символов.
func newTransactionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:20]
}
