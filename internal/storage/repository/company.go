package repository

import (
	"context"
	"fmt"

	"github.com/66emil/SubscribeTrack/internal/models"
)

// CreateCompany вставляет новую компанию и возвращает её ID.
func (s *Storage) CreateCompany(ctx context.Context, entry models.DummyCompany) (int, error) {
	const op = "storage.CreateCompany"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO companies (name, category_id, description, website, logo_url, subscription_plans)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		entry.Name, entry.CategoryID, entry.Description, entry.Website,
		entry.LogoURL, entry.SubscriptionPlans).Scan(&newID)
	if err != nil {
		return 0, translateError(op, err)
	}
	return newID, nil
}

// ReadCompany возвращает компанию по её ID вместе с названием категории.
func (s *Storage) ReadCompany(ctx context.Context, id int) (*models.Company, error) {
	const op = "storage.ReadCompany"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.name, c.category_id, cat.name, c.description, c.website,
				  c.logo_url, c.subscription_plans, c.created_at, c.updated_at
			  FROM companies c
			  JOIN categories cat ON cat.id = c.category_id
			  WHERE c.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Company
	if err := row.Scan(&result.ID, &result.Name, &result.CategoryID, &result.CategoryName,
		&result.Description, &result.Website, &result.LogoURL, &result.SubscriptionPlans,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, translateError(op, err)
	}
	return &result, nil
}

// UpdateCompany обновляет компанию по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateCompany(ctx context.Context, entry models.DummyCompany, id int) (int, error) {
	const op = "storage.UpdateCompany"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE companies
			  SET name = $1, category_id = $2, description = $3, website = $4,
			      logo_url = $5, subscription_plans = $6, updated_at = now()
			  WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		entry.Name, entry.CategoryID, entry.Description, entry.Website,
		entry.LogoURL, entry.SubscriptionPlans, id)
	if err != nil {
		return 0, translateError(op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCompany удаляет компанию по ID. Подписки на компанию удаляются каскадом.
func (s *Storage) RemoveCompany(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCompany"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM companies WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCompanies возвращает компании по алфавиту с пагинацией.
// Ненулевой categoryID ограничивает выборку одной категорией.
func (s *Storage) ListCompanies(ctx context.Context, categoryID *int, limit, offset int) ([]*models.Company, error) {
	const op = "storage.ListCompanies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.name, c.category_id, cat.name, c.description, c.website,
				  c.logo_url, c.subscription_plans, c.created_at, c.updated_at
			  FROM companies c
			  JOIN categories cat ON cat.id = c.category_id
			  WHERE ($1::int IS NULL OR c.category_id = $1)
			  ORDER BY c.name
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Company
	for rows.Next() {
		var item models.Company
		if err := rows.Scan(&item.ID, &item.Name, &item.CategoryID, &item.CategoryName,
			&item.Description, &item.Website, &item.LogoURL, &item.SubscriptionPlans,
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

// ListAllCompanies возвращает все компании по алфавиту, без пагинации.
// Используется как справочник при создании подписки.
func (s *Storage) ListAllCompanies(ctx context.Context) ([]*models.Company, error) {
	const op = "storage.ListAllCompanies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.name, c.category_id, cat.name, c.description, c.website,
				  c.logo_url, c.subscription_plans, c.created_at, c.updated_at
			  FROM companies c
			  JOIN categories cat ON cat.id = c.category_id
			  ORDER BY c.name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Company
	for rows.Next() {
		var item models.Company
		if err := rows.Scan(&item.ID, &item.Name, &item.CategoryID, &item.CategoryName,
			&item.Description, &item.Website, &item.LogoURL, &item.SubscriptionPlans,
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

// CountCompanies возвращает количество компаний, при необходимости в одной категории.
func (s *Storage) CountCompanies(ctx context.Context, categoryID *int) (int, error) {
	const op = "storage.CountCompanies"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM companies WHERE ($1::int IS NULL OR category_id = $1)`
	if err := s.DB.QueryRowContext(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListCompanyIDsByCategory возвращает идентификаторы компаний категории.
// Нужен сервису для инвалидации кеша перед каскадным удалением категории.
func (s *Storage) ListCompanyIDsByCategory(ctx context.Context, categoryID int) ([]int, error) {
	const op = "storage.ListCompanyIDsByCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id FROM companies WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
