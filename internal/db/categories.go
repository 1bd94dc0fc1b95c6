package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/armkeys/new-stock-product-control/internal/models"
)

// GetCategoryBySlug resolves a category by its stable slug.
func (d *DB) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT id, slug, name FROM categories WHERE slug = $1`

	var cat models.Category
	err := d.Pool.QueryRow(ctx, query, slug).Scan(&cat.ID, &cat.Slug, &cat.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategory inserts a category, returning the existing row on slug
// conflict.
func (d *DB) CreateCategory(ctx context.Context, cat *models.Category) error {
	query := `
		INSERT INTO categories (slug, name)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	return d.Pool.QueryRow(ctx, query, cat.Slug, cat.Name).Scan(&cat.ID)
}

// GetCategoryIDs retrieves the category memberships of an item.
func (d *DB) GetCategoryIDs(ctx context.Context, itemID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT category_id FROM item_categories WHERE item_id = $1`

	rows, err := d.Pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignCategory adds an item to a category. Idempotent.
func (d *DB) AssignCategory(ctx context.Context, itemID, categoryID uuid.UUID) error {
	query := `
		INSERT INTO item_categories (item_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	_, err := d.Pool.Exec(ctx, query, itemID, categoryID)
	return err
}
