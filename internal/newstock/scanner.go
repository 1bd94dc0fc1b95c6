package newstock

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/armkeys/new-stock-product-control/internal/models"
)

// Scanner enumerates the tracked category's items for the bulk operations.
// Each walk reads the full set up front and only then visits, so visitors
// may freely write metadata without invalidating the enumeration.
type Scanner struct {
	catalog Catalog
}

// NewScanner creates a category scanner.
func NewScanner(catalog Catalog) *Scanner {
	return &Scanner{catalog: catalog}
}

// ForEachSimple visits every published simple product in the category.
func (s *Scanner) ForEachSimple(ctx context.Context, categoryID uuid.UUID, visit func(*models.Item)) error {
	products, err := s.catalog.GetProductsInCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].IsSimple() {
			visit(&products[i])
		}
	}
	return nil
}

// ForEachVariation visits every published variation under every product in
// the category, regardless of the parent's type. A failed child lookup skips
// that parent, not the walk.
func (s *Scanner) ForEachVariation(ctx context.Context, categoryID uuid.UUID, visit func(*models.Item)) error {
	products, err := s.catalog.GetProductsInCategory(ctx, categoryID)
	if err != nil {
		return err
	}

	var variations []models.Item
	for i := range products {
		children, err := s.catalog.GetChildren(ctx, products[i].ID)
		if err != nil {
			slog.Error("failed to list variations", "parent", products[i].ID, "error", err)
			continue
		}
		variations = append(variations, children...)
	}

	for i := range variations {
		visit(&variations[i])
	}
	return nil
}
