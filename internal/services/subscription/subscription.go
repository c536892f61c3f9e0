// Package services содержит бизнес-логику для управления подписками пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/66emil/SubscribeTrack/internal/models"
)

// PageSize размер страницы списка подписок.
const PageSize = 10

// Ошибки валидации запроса, которые обработчики отдают как 422.
var (
	// ErrNonPositivePrice возвращается при цене подписки меньше либо равной нулю.
	ErrNonPositivePrice = errors.New("price must be greater than zero")
	// ErrInvalidDate возвращается, если дата не соответствует формату 2006-01-02.
	ErrInvalidDate = errors.New("date must be in 2006-01-02 format")
)

// Routing keys событий об изменениях подписок.
const (
	EventCreated = "subscription.created"
	EventUpdated = "subscription.updated"
	EventDeleted = "subscription.deleted"
)

// Event описывает сообщение об изменении подписки для брокера.
type Event struct {
	ID        int    `json:"id"`         // Идентификатор подписки
	UserUID   string `json:"user_uid"`   // Владелец
	CompanyID int    `json:"company_id"` // Компания
	PlanName  string `json:"plan_name"`  // План
}

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, entry models.Subscription) (int, error)
	// ReadSubscription возвращает подписку по ID в границах владельца.
	ReadSubscription(ctx context.Context, id int, userUID string) (*models.Subscription, error)
	// UpdateSubscription обновляет подписку по ID в границах владельца.
	UpdateSubscription(ctx context.Context, entry models.Subscription, id int, userUID string) (int, error)
	// RemoveSubscription удаляет подписку по ID в границах владельца.
	RemoveSubscription(ctx context.Context, id int, userUID string) (int, error)
	// ListSubscriptions возвращает подписки пользователя с пагинацией.
	ListSubscriptions(ctx context.Context, userUID string, limit, offset int) ([]*models.Subscription, error)
	// ListAllSubscriptions возвращает все подписки с пагинацией.
	ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
	// CountSummary считает агрегаты по всем подпискам пользователя.
	CountSummary(ctx context.Context, userUID string) (*models.SubscriptionSummary, error)
	// ListAllCompanies возвращает справочник компаний для формы подписки.
	ListAllCompanies(ctx context.Context) ([]*models.Company, error)
}

// EventPublisher описывает публикацию событий в брокер сообщений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
// Все операции чтения и изменения ограничены владельцем подписки;
// роль admin расширяет только листинг.
type SubscriptionService struct {
	repo   SubscriptionRepository
	events EventPublisher
	log    *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
// events может быть nil, тогда события не публикуются.
func NewSubscriptionService(repo SubscriptionRepository, events EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

func (s *SubscriptionService) publish(routingKey string, event Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, event); err != nil {
		s.log.Warn("failed to publish event",
			slog.String("routing_key", routingKey), slog.Any("err", err))
	}
}

// buildEntry превращает запрос в доменную подписку: парсит даты,
// проставляет владельца и значения по умолчанию.
func buildEntry(userUID string, req models.DummySubscription) (models.Subscription, error) {
	var entry models.Subscription

	if !req.Price.IsPositive() {
		return entry, ErrNonPositivePrice
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return entry, fmt.Errorf("start date: %w", ErrInvalidDate)
	}
	nextBillingDate, err := time.Parse("2006-01-02", req.NextBillingDate)
	if err != nil {
		return entry, fmt.Errorf("next billing date: %w", ErrInvalidDate)
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return entry, fmt.Errorf("end date: %w", ErrInvalidDate)
		}
		endDate = &parsed
	}

	billingPeriod := req.BillingPeriod
	if billingPeriod == "" {
		billingPeriod = models.BillingMonthly
	}
	status := req.Status
	if status == "" {
		status = models.StatusActive
	}

	entry = models.Subscription{
		UserUID:         userUID,
		CompanyID:       req.CompanyID,
		PlanName:        req.PlanName,
		Price:           req.Price,
		BillingPeriod:   billingPeriod,
		Status:          status,
		StartDate:       startDate,
		NextBillingDate: nextBillingDate,
		EndDate:         endDate,
		Notes:           req.Notes,
	}
	return entry, nil
}

// Create создает новую подписку для пользователя и возвращает её ID.
// Владелец всегда берётся из аутентификации, а не из тела запроса.
func (s *SubscriptionService) Create(ctx context.Context, userUID string, req models.DummySubscription) (int, error) {
	entry, err := buildEntry(userUID, req)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.CreateSubscription(ctx, entry)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new subscription", slog.Int("id", id))

	s.publish(EventCreated, Event{
		ID: id, UserUID: userUID, CompanyID: entry.CompanyID, PlanName: entry.PlanName,
	})
	return id, nil
}

// Read возвращает подписку пользователя по ID с вычисленным признаком активности.
func (s *SubscriptionService) Read(ctx context.Context, id int, userUID string) (*models.Subscription, error) {
	result, err := s.repo.ReadSubscription(ctx, id, userUID)
	if err != nil {
		return nil, err
	}
	result.IsActive = result.ActiveAt(time.Now())
	return result, nil
}

// Update обновляет подписку пользователя по ID.
func (s *SubscriptionService) Update(ctx context.Context, req models.DummySubscription, id int, userUID string) (int, error) {
	entry, err := buildEntry(userUID, req)
	if err != nil {
		return 0, err
	}

	res, err := s.repo.UpdateSubscription(ctx, entry, id, userUID)
	if err != nil {
		return 0, err
	}
	if res > 0 {
		s.log.Info("updated subscription in storage", slog.Int("id", id))
		s.publish(EventUpdated, Event{
			ID: id, UserUID: userUID, CompanyID: entry.CompanyID, PlanName: entry.PlanName,
		})
	}
	return res, nil
}

// Remove удаляет подписку пользователя по ID.
func (s *SubscriptionService) Remove(ctx context.Context, id int, userUID string) (int, error) {
	count, err := s.repo.RemoveSubscription(ctx, id, userUID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.log.Info("removed subscription", slog.Int("id", id))
		s.publish(EventDeleted, Event{ID: id, UserUID: userUID})
	}
	return count, nil
}

// List возвращает страницу подписок и агрегаты по всем подпискам пользователя.
// Роль admin получает подписки всех пользователей, но агрегаты всегда свои.
func (s *SubscriptionService) List(ctx context.Context, userUID, role string, page int) ([]*models.Subscription, *models.SubscriptionSummary, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	var err error
	var entries []*models.Subscription
	if role == "admin" {
		entries, err = s.repo.ListAllSubscriptions(ctx, PageSize, offset)
	} else {
		entries, err = s.repo.ListSubscriptions(ctx, userUID, PageSize, offset)
	}
	if err != nil {
		return nil, nil, err
	}

	today := time.Now()
	for _, entry := range entries {
		entry.IsActive = entry.ActiveAt(today)
	}

	summary, err := s.repo.CountSummary(ctx, userUID)
	if err != nil {
		return nil, nil, err
	}
	return entries, summary, nil
}

// CompanyOptions возвращает справочник компаний для формы создания подписки.
func (s *SubscriptionService) CompanyOptions(ctx context.Context) ([]*models.Company, error) {
	return s.repo.ListAllCompanies(ctx)
}
