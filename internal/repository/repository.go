package repository

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound возвращается, когда запись отсутствует в хранилище.
// Любая другая ошибка означает сбой самого хранилища.
var ErrNotFound = errors.New("record not found")

func init() {
	// Колонки numeric в PostgREST принимают числа, а не строки
	decimal.MarshalJSONWithoutQuotes = true
}
