package service

import "errors"

// Ошибки протокола применения заявок. Обработчики различают их
// через errors.Is и превращают в сообщения администратору.
var (
	// ErrNotFound заявка с таким идентификатором отсутствует.
	ErrNotFound = errors.New("transaction not found")
	// ErrNotPending заявка уже обработана; повторное применение невозможно.
	ErrNotPending = errors.New("transaction is not pending")
	// ErrUserNotFound владелец заявки отсутствует в хранилище.
	// Это нарушение целостности данных, а не ошибка ввода.
	ErrUserNotFound = errors.New("transaction user not found")
	// ErrInsufficientBalance баланс меньше суммы вывода.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrMutationFailed сбой записи в хранилище при применении заявки.
	ErrMutationFailed = errors.New("failed to apply transaction")
)
