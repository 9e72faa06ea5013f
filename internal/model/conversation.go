package model

import "github.com/shopspring/decimal"

// Step шаг диалога согласования заявки.
type Step int

const (
	StepAwaitingID Step = iota + 1
	StepAwaitingAmount
	StepConfirming
)

// Conversation состояние многошагового диалога согласования.
// Для одного администратора существует не более одной записи;
// начало нового диалога безусловно вытесняет предыдущую.
type Conversation struct {
	Kind           Kind
	Step           Step
	TxID           string
	OriginalAmount decimal.Decimal
	Amount         decimal.Decimal
}
