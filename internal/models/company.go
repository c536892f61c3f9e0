package models

import "time"

// Company представляет компанию, предоставляющую подписки.
// Компания принадлежит ровно одной категории и хранит справочный
// каталог планов (название плана -> цена строкой).
type Company struct {
	ID                int       `json:"id"`                      // Уникальный идентификатор
	Name              string    `json:"name"`                    // Название компании (уникальное)
	CategoryID        int       `json:"category_id"`             // Идентификатор категории
	CategoryName      string    `json:"category_name,omitempty"` // Название категории (заполняется при чтении)
	Description       *string   `json:"description,omitempty"`   // Описание (опционально)
	Website           *string   `json:"website,omitempty"`       // Веб-сайт (опционально)
	LogoURL           *string   `json:"logo_url,omitempty"`      // URL логотипа (опционально)
	SubscriptionPlans PlanMap   `json:"subscription_plans"`      // Каталог планов
	CreatedAt         time.Time `json:"created_at"`              // Дата создания
	UpdatedAt         time.Time `json:"updated_at"`              // Дата обновления
}

// DummyCompany используется для приёма данных компании из JSON-запроса.
// Каталог планов проверяется при декодировании PlanMap: некорректная
// структура отклоняется ещё до вызова бизнес-логики.
type DummyCompany struct {
	Name              string  `json:"name" validate:"required,max=200"`       // Название компании
	CategoryID        int     `json:"category_id" validate:"required,gt=0"`   // Категория (обязательная ссылка)
	Description       *string `json:"description,omitempty"`                  // Описание
	Website           *string `json:"website,omitempty" validate:"omitempty,url"`  // Веб-сайт
	LogoURL           *string `json:"logo_url,omitempty" validate:"omitempty,url"` // URL логотипа
	SubscriptionPlans PlanMap `json:"subscription_plans"`                     // Каталог планов
}
