package newstock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/metrics"
	"github.com/armkeys/new-stock-product-control/internal/models"
)

// Classifier flags a single item as new or not new when it is saved. Every
// failed precondition is a silent no-op so that saves of unrelated items
// cost nothing; the processed marker makes a successful run idempotent.
type Classifier struct {
	catalog  Catalog
	resolver *Resolver
}

// NewClassifier creates an on-save classifier.
func NewClassifier(catalog Catalog, resolver *Resolver) *Classifier {
	return &Classifier{catalog: catalog, resolver: resolver}
}

// ProductSaved classifies a simple product after it is saved. Returns nil on
// every failed precondition; errors are store failures only and must not
// abort batch callers.
func (c *Classifier) ProductSaved(ctx context.Context, id uuid.UUID) error {
	item, err := c.catalog.GetItem(ctx, id)
	if errors.Is(err, db.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !item.IsProduct() || item.IsVariable() {
		return nil
	}

	cat, err := c.catalog.GetCategoryBySlug(ctx, models.CategorySlug)
	if errors.Is(err, db.ErrCategoryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	member, err := c.inCategory(ctx, item.ID, cat.ID)
	if err != nil || !member {
		return err
	}

	processed, err := c.catalog.GetMeta(ctx, item.ID, models.MetaSimpleProcessed)
	if err != nil {
		return err
	}
	if models.IsYes(processed) {
		return nil
	}

	if item.CreatedAt.IsZero() {
		return nil
	}

	return c.flag(ctx, item)
}

// VariationSaved classifies a variation after it is saved. The exclude
// marker opts a variation out permanently; category membership is the
// parent's.
func (c *Classifier) VariationSaved(ctx context.Context, id uuid.UUID) error {
	item, err := c.catalog.GetItem(ctx, id)
	if errors.Is(err, db.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !item.IsVariation() {
		return nil
	}

	exclude, err := c.catalog.GetMeta(ctx, item.ID, models.MetaExcludeVariation)
	if err != nil {
		return err
	}
	if models.IsYes(exclude) {
		return nil
	}

	processed, err := c.catalog.GetMeta(ctx, item.ID, models.MetaVariationProcessed)
	if err != nil {
		return err
	}
	if models.IsYes(processed) {
		return nil
	}

	if item.ParentID == nil {
		return nil
	}

	cat, err := c.catalog.GetCategoryBySlug(ctx, models.CategorySlug)
	if errors.Is(err, db.ErrCategoryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	member, err := c.inCategory(ctx, *item.ParentID, cat.ID)
	if err != nil || !member {
		return err
	}

	if item.CreatedAt.IsZero() {
		return nil
	}

	return c.flag(ctx, item)
}

// flag performs the classification writes. The is_new sequence is written
// exactly as deployed stores expect it: the initial yes/no value is
// immediately superseded, leaving out-of-range items with is_new = "yes" and
// in-range items with no is_new key at all. The listing query and the
// visibility gate read that final state; do not "fix" the order.
func (c *Classifier) flag(ctx context.Context, item *models.Item) error {
	start, end, err := c.resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	isNew := inRange(item.CreatedAt, start, end)

	value := models.MetaNo
	if isNew {
		value = models.MetaYes
	}
	if err := c.catalog.SetMeta(ctx, item.ID, models.MetaIsNew, value); err != nil {
		return err
	}

	if !isNew {
		if err := c.catalog.SetMeta(ctx, item.ID, models.MetaIsNew, models.MetaYes); err != nil {
			return err
		}
	} else {
		if err := c.catalog.DeleteMeta(ctx, item.ID, models.MetaIsNew); err != nil {
			return err
		}
	}

	if err := c.catalog.SetMeta(ctx, item.ID, item.ProcessedKey(), models.MetaYes); err != nil {
		return err
	}

	metrics.RecordClassification(item.Kind, isNew)
	slog.Debug("classified catalog item",
		"item", item.ID, "kind", item.Kind, "in_range", isNew,
		"created", item.CreatedAt.Format(time.RFC3339))
	return nil
}

// inCategory reports whether an item is a member of the category.
func (c *Classifier) inCategory(ctx context.Context, itemID, categoryID uuid.UUID) (bool, error) {
	ids, err := c.catalog.GetCategoryIDs(ctx, itemID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == categoryID {
			return true, nil
		}
	}
	return false, nil
}
