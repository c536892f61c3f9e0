package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Учётные записи нужны ядру только как владелец подписок: стабильный
// идентификатор для штамповки и фильтрации строк.
type User struct {
	UID          string    `json:"uid"`      // Уникальный идентификатор пользователя
	Email        string    `json:"email"`    // Электронная почта
	Username     string    `json:"username"` // Имя пользователя (уникальное)
	PasswordHash string    `json:"-"`        // Хэш пароля
	Role         string    `json:"role"`     // Роль, admin или user
	CreatedAt    time.Time `json:"created_at"`
}
