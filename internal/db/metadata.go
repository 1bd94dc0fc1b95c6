package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetMeta retrieves a metadata value for an item. An absent key reads as the
// empty string, not an error.
func (d *DB) GetMeta(ctx context.Context, itemID uuid.UUID, key string) (string, error) {
	query := `SELECT meta_value FROM item_meta WHERE item_id = $1 AND meta_key = $2`

	var value string
	err := d.Pool.QueryRow(ctx, query, itemID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetMeta writes a metadata value for an item, overwriting any existing
// value. Last writer wins.
func (d *DB) SetMeta(ctx context.Context, itemID uuid.UUID, key, value string) error {
	query := `
		INSERT INTO item_meta (item_id, meta_key, meta_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value
	`
	_, err := d.Pool.Exec(ctx, query, itemID, key, value)
	return err
}

// DeleteMeta removes a metadata key from an item. Deleting an absent key is
// not an error.
func (d *DB) DeleteMeta(ctx context.Context, itemID uuid.UUID, key string) error {
	query := `DELETE FROM item_meta WHERE item_id = $1 AND meta_key = $2`
	_, err := d.Pool.Exec(ctx, query, itemID, key)
	return err
}
