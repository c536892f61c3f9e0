package repository

import (
	"context"
	"fmt"

	"github.com/66emil/SubscribeTrack/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
// Владелец берётся из entry.UserUID, проставленного сервисом.
func (s *Storage) CreateSubscription(ctx context.Context, entry models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (user_uid, company_id, plan_name, price,
			      billing_period, status, start_date, next_billing_date, end_date, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.UserUID, entry.CompanyID, entry.PlanName, entry.Price,
		entry.BillingPeriod, entry.Status, entry.StartDate, entry.NextBillingDate,
		entry.EndDate, entry.Notes).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ReadSubscription возвращает подписку по ID в границах владельца.
// Чужой или несуществующий ID дает storage.ErrNotFound.
func (s *Storage) ReadSubscription(ctx context.Context, id int, userUID string) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sub.id, sub.user_uid, sub.company_id, c.name, sub.plan_name, sub.price,
				  sub.billing_period, sub.status, sub.start_date, sub.next_billing_date,
				  sub.end_date, sub.notes, sub.created_at, sub.updated_at
			  FROM subscriptions sub
			  JOIN companies c ON c.id = sub.company_id
			  WHERE sub.id = $1 AND sub.user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Subscription
	if err := row.Scan(&result.ID, &result.UserUID, &result.CompanyID, &result.CompanyName,
		&result.PlanName, &result.Price, &result.BillingPeriod, &result.Status,
		&result.StartDate, &result.NextBillingDate, &result.EndDate, &result.Notes,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return &result, nil
}

// UpdateSubscription обновляет подписку по ID в границах владельца
// и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, entry models.Subscription, id int, userUID string) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET company_id = $1, plan_name = $2, price = $3, billing_period = $4,
			      status = $5, start_date = $6, next_billing_date = $7, end_date = $8,
			      notes = $9, updated_at = now()
			  WHERE id = $10 AND user_uid = $11`
	result, err := s.DB.ExecContext(ctx, query,
		entry.CompanyID, entry.PlanName, entry.Price, entry.BillingPeriod,
		entry.Status, entry.StartDate, entry.NextBillingDate, entry.EndDate,
		entry.Notes, id, userUID)
	if err != nil {
		return 0, translateError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSubscription удаляет подписку по ID в границах владельца.
func (s *Storage) RemoveSubscription(ctx context.Context, id int, userUID string) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

const listSubscriptionColumns = `SELECT sub.id, sub.user_uid, sub.company_id, c.name, sub.plan_name, sub.price,
			  sub.billing_period, sub.status, sub.start_date, sub.next_billing_date,
			  sub.end_date, sub.notes, sub.created_at, sub.updated_at
		  FROM subscriptions sub
		  JOIN companies c ON c.id = sub.company_id`

// ListSubscriptions возвращает подписки пользователя с пагинацией,
// упорядоченные по дате начала по убыванию.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string, limit, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := listSubscriptionColumns + `
		  WHERE sub.user_uid = $1
		  ORDER BY sub.start_date DESC, sub.id DESC
		  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	return scanSubscriptions(op, rows)
}

// ListAllSubscriptions возвращает все подписки с пагинацией.
// Доступен только доверенному оператору с ролью admin.
func (s *Storage) ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	const op = "storage.ListAllSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := listSubscriptionColumns + `
		  ORDER BY sub.start_date DESC, sub.id DESC
		  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	return scanSubscriptions(op, rows)
}

type subscriptionRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSubscriptions(op string, rows subscriptionRows) ([]*models.Subscription, error) {
	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.UserUID, &item.CompanyID, &item.CompanyName,
			&item.PlanName, &item.Price, &item.BillingPeriod, &item.Status,
			&item.StartDate, &item.NextBillingDate, &item.EndDate, &item.Notes,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountSummary считает агрегаты по всем подпискам пользователя:
// общее количество, количество активных и сумму цен активных
// месячных подписок.
func (s *Storage) CountSummary(ctx context.Context, userUID string) (*models.SubscriptionSummary, error) {
	const op = "storage.CountSummary"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*),
				  COUNT(*) FILTER (WHERE status = 'active'),
				  COALESCE(SUM(price) FILTER (WHERE status = 'active' AND billing_period = 'monthly'), 0)
			  FROM subscriptions
			  WHERE user_uid = $1`
	var result models.SubscriptionSummary
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&result.TotalSubscriptions, &result.ActiveSubscriptions,
		&result.TotalMonthlyCost); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// CountActiveSubscriptions возвращает количество активных подписок пользователя.
func (s *Storage) CountActiveSubscriptions(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountActiveSubscriptions"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM subscriptions WHERE user_uid = $1 AND status = 'active'`
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
