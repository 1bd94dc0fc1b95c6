// Package newstock implements the new-item classification and reconciliation
// engine for the tracked "new-stock" category. It decides whether catalog
// items count as newly added, flags them idempotently on save, expires them
// on a scheduled sweep unless manually pinned, and answers the visibility
// question for the category listing.
//
// All durable state is key-value metadata attached to catalog items owned by
// the external store; the engine itself keeps nothing.
package newstock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/armkeys/new-stock-product-control/internal/models"
)

// ErrInvalidDates is returned by the manual filter run when either date is
// missing or not a calendar date. Operator input is rejected, never
// corrected; only the range resolver self-heals stored configuration.
var ErrInvalidDates = errors.New("start and end dates are required and must be valid dates")

// Catalog is the slice of the catalog store the engine needs.
// Implementations return db.ErrItemNotFound / db.ErrCategoryNotFound for
// missing rows; absent metadata reads as the empty string.
type Catalog interface {
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	GetCategoryIDs(ctx context.Context, itemID uuid.UUID) ([]uuid.UUID, error)
	GetProductsInCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Item, error)
	GetChildren(ctx context.Context, parentID uuid.UUID) ([]models.Item, error)
	ItemsWithMeta(ctx context.Context, keys []string, publishedOnly bool) ([]models.Item, error)
	GetMeta(ctx context.Context, itemID uuid.UUID, key string) (string, error)
	SetMeta(ctx context.Context, itemID uuid.UUID, key, value string) error
	DeleteMeta(ctx context.Context, itemID uuid.UUID, key string) error
}

// Settings is the persisted configuration store backing the range resolver.
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// inRange reports whether a creation instant falls inside the inclusive
// effective range.
func inRange(created, start, end time.Time) bool {
	return !created.Before(start) && !created.After(end)
}
