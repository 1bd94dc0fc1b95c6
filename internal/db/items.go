package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/armkeys/new-stock-product-control/internal/models"
)

// itemColumns is the standard column list for catalog item queries.
const itemColumns = `id, kind, COALESCE(product_type, ''), parent_id, name, status, created_at`

// scanItem scans a row into an Item struct.
func scanItem(row pgx.Row) (*models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.ID,
		&item.Kind,
		&item.ProductType,
		&item.ParentID,
		&item.Name,
		&item.Status,
		&item.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// scanItems scans multiple rows into a slice of Items.
func scanItems(rows pgx.Rows) ([]models.Item, error) {
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID,
			&item.Kind,
			&item.ProductType,
			&item.ParentID,
			&item.Name,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetItem retrieves a single catalog item or variation by id.
func (d *DB) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM catalog_items WHERE id = $1`
	return scanItem(d.Pool.QueryRow(ctx, query, id))
}

// CreateItem inserts a catalog item or variation.
func (d *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO catalog_items (kind, product_type, parent_id, name, status, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, COALESCE($6::timestamptz, now()))
		RETURNING id, created_at
	`

	status := item.Status
	if status == "" {
		status = models.StatusPublish
	}

	var createdAt any
	if !item.CreatedAt.IsZero() {
		createdAt = item.CreatedAt
	}

	return d.Pool.QueryRow(ctx, query,
		item.Kind,
		item.ProductType,
		item.ParentID,
		item.Name,
		status,
		createdAt,
	).Scan(&item.ID, &item.CreatedAt)
}

// GetProductsInCategory retrieves all published top-level products that are
// members of the given category. No limit: callers expect the full set.
func (d *DB) GetProductsInCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM catalog_items
		WHERE kind = 'product'
		  AND status = 'publish'
		  AND id IN (SELECT item_id FROM item_categories WHERE category_id = $1)
	`

	rows, err := d.Pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// GetChildren retrieves the published child variations of a product.
func (d *DB) GetChildren(ctx context.Context, parentID uuid.UUID) ([]models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM catalog_items
		WHERE kind = 'variation' AND parent_id = $1 AND status = 'publish'
	`

	rows, err := d.Pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// ItemsWithMeta retrieves items and variations that carry any of the given
// metadata keys, regardless of value. publishedOnly narrows to published
// items; the deactivation cleanup passes false to cover every status.
func (d *DB) ItemsWithMeta(ctx context.Context, keys []string, publishedOnly bool) ([]models.Item, error) {
	query := `
		SELECT DISTINCT ` + itemColumns + `
		FROM catalog_items
		WHERE id IN (SELECT item_id FROM item_meta WHERE meta_key = ANY($1))
	`
	if publishedOnly {
		query += ` AND status = 'publish'`
	}

	rows, err := d.Pool.Query(ctx, query, keys)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// CategoryListing retrieves published products in a category, newest first.
// This is the default category view.
func (d *DB) CategoryListing(ctx context.Context, categoryID uuid.UUID) ([]models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM catalog_items
		WHERE kind = 'product'
		  AND status = 'publish'
		  AND id IN (SELECT item_id FROM item_categories WHERE category_id = $1)
		ORDER BY created_at DESC
	`

	rows, err := d.Pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

// NewStockListing retrieves the tracked-category view: published products in
// the category and variations whose parent is in the category, restricted to
// items carrying an affirmative is_new or processed marker, newest first.
func (d *DB) NewStockListing(ctx context.Context, categoryID uuid.UUID) ([]models.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM catalog_items i
		WHERE i.status = 'publish'
		  AND (
			i.id IN (SELECT item_id FROM item_categories WHERE category_id = $1)
			OR i.parent_id IN (SELECT item_id FROM item_categories WHERE category_id = $1)
		  )
		  AND i.id IN (
			SELECT item_id FROM item_meta
			WHERE meta_value = $2 AND meta_key = ANY($3)
		  )
		ORDER BY i.created_at DESC
	`

	keys := []string{models.MetaIsNew, models.MetaSimpleProcessed, models.MetaVariationProcessed}
	rows, err := d.Pool.Query(ctx, query, categoryID, models.MetaYes, keys)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}
