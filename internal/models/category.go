// Package models содержит доменные структуры приложения: категории,
// компании, подписки и пользователей, а также вспомогательные типы
// для приёма данных из JSON-запросов (Dummy-структуры).
package models

import "time"

// Category представляет категорию для группировки компаний,
// например "Стриминг видео" или "Облачные хранилища".
type Category struct {
	ID          int       `json:"id"`                    // Уникальный идентификатор
	Name        string    `json:"name"`                  // Название категории (уникальное)
	Description *string   `json:"description,omitempty"` // Описание (опционально)
	CreatedAt   time.Time `json:"created_at"`            // Дата создания
	UpdatedAt   time.Time `json:"updated_at"`            // Дата обновления
}

// DummyCategory используется для приёма данных категории из JSON-запроса
// до их валидации и сохранения.
type DummyCategory struct {
	Name        string  `json:"name" validate:"required,max=100"` // Название категории
	Description *string `json:"description,omitempty"`            // Описание (опционально)
}
