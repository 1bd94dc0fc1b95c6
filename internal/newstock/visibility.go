package newstock

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/models"
)

// Gate is the visibility predicate the listing layer consults for items
// shown inside the tracked category view. Outside that view the default
// visibility applies and the gate is never asked.
type Gate struct {
	catalog Catalog
}

// NewGate creates a visibility gate.
func NewGate(catalog Catalog) *Gate {
	return &Gate{catalog: catalog}
}

// Visible reports whether an item should appear in the tracked category
// view. Hidden only when neither the is_new flag nor the kind-appropriate
// processed marker is affirmative, i.e. once the item has been fully
// reconciled out. Unknown items stay visible; hiding is the exception.
func (g *Gate) Visible(ctx context.Context, itemID uuid.UUID) (bool, error) {
	item, err := g.catalog.GetItem(ctx, itemID)
	if errors.Is(err, db.ErrItemNotFound) {
		return true, nil
	}
	if err != nil {
		return true, err
	}

	isNew, err := g.catalog.GetMeta(ctx, item.ID, models.MetaIsNew)
	if err != nil {
		return true, err
	}
	processed, err := g.catalog.GetMeta(ctx, item.ID, item.ProcessedKey())
	if err != nil {
		return true, err
	}

	if !models.IsYes(isNew) && !models.IsYes(processed) {
		return false, nil
	}
	return true, nil
}
