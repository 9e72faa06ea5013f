package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User представляет пользователя бота в коллекции users.
// Баланс является авторитетным и изменяется только сервисом согласования.
type User struct {
	ID           string          `json:"user_id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Username     string          `json:"username"`
	LanguageCode string          `json:"language_code"`
	IsPremium    bool            `json:"is_premium"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

// DisplayName возвращает имя для списков: @username, затем имя и фамилия,
// затем User {id}.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return fmt.Sprintf("User %s", u.ID)
}
