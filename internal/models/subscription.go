package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Периоды оплаты подписки.
const (
	BillingMonthly   = "monthly"
	BillingQuarterly = "quarterly"
	BillingYearly    = "yearly"
)

// Статусы подписки. Переходы между статусами не ограничены:
// владелец может выставить любой статус в любой момент.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
	StatusPaused    = "paused"
)

// Subscription представляет подписку пользователя на план компании.
// Поля plan_name и price копируются при создании и дальше живут
// независимо от каталога планов компании.
type Subscription struct {
	ID              int             `json:"id"`                     // Уникальный идентификатор
	UserUID         string          `json:"-"`                      // Владелец подписки (не отдается наружу)
	CompanyID       int             `json:"company_id"`             // Компания
	CompanyName     string          `json:"company_name,omitempty"` // Название компании (заполняется при чтении)
	PlanName        string          `json:"plan_name"`              // Название плана
	Price           decimal.Decimal `json:"price"`                  // Цена (строго > 0)
	BillingPeriod   string          `json:"billing_period"`         // Период оплаты
	Status          string          `json:"status"`                 // Статус
	StartDate       time.Time       `json:"start_date"`             // Дата начала
	NextBillingDate time.Time       `json:"next_billing_date"`      // Следующая дата оплаты (не сдвигается автоматически)
	EndDate         *time.Time      `json:"end_date,omitempty"`     // Дата окончания (опционально)
	Notes           *string         `json:"notes,omitempty"`        // Заметки
	IsActive        bool            `json:"is_active"`              // Вычисляемый признак активности
	CreatedAt       time.Time       `json:"created_at"`             // Дата создания
	UpdatedAt       time.Time       `json:"updated_at"`             // Дата обновления
}

// ActiveAt сообщает, активна ли подписка на указанную дату:
// статус active и дата окончания не задана либо не прошла.
func (s *Subscription) ActiveAt(today time.Time) bool {
	if s.Status != StatusActive {
		return false
	}
	if s.EndDate == nil {
		return true
	}
	return !s.EndDate.Before(today.Truncate(24 * time.Hour))
}

// DummySubscription используется для приёма данных подписки из JSON-запроса.
// Поле владельца намеренно отсутствует: пользователь всегда берётся
// из контекста аутентификации, а не из тела запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся в сервисе.
type DummySubscription struct {
	CompanyID       int             `json:"company_id" validate:"required,gt=0"`                                          // Компания
	PlanName        string          `json:"plan_name" validate:"required,max=100"`                                        // Название плана
	Price           decimal.Decimal `json:"price"`                                                                        // Цена, проверяется в сервисе (> 0)
	BillingPeriod   string          `json:"billing_period,omitempty" validate:"omitempty,oneof=monthly quarterly yearly"` // Период оплаты
	Status          string          `json:"status,omitempty" validate:"omitempty,oneof=active cancelled expired paused"`  // Статус
	StartDate       string          `json:"start_date" validate:"required"`        // Дата начала
	NextBillingDate string          `json:"next_billing_date" validate:"required"` // Следующая дата оплаты
	EndDate         string          `json:"end_date,omitempty"`                    // Дата окончания (опционально)
	Notes           *string         `json:"notes,omitempty"`                       // Заметки
}

// SubscriptionSummary агрегаты по всем подпискам пользователя,
// а не только по текущей странице списка.
type SubscriptionSummary struct {
	TotalSubscriptions  int             `json:"total_subscriptions"`  // Всего подписок
	ActiveSubscriptions int             `json:"active_subscriptions"` // Подписок со статусом active
	TotalMonthlyCost    decimal.Decimal `json:"total_monthly_cost"`   // Сумма цен активных месячных подписок
}

// Stats счётчики для главной страницы.
type Stats struct {
	CategoriesCount    int `json:"categories_count"`    // Всего категорий
	CompaniesCount     int `json:"companies_count"`     // Всего компаний
	SubscriptionsCount int `json:"subscriptions_count"` // Активных подписок текущего пользователя
}
