package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/models"
	"github.com/armkeys/new-stock-product-control/internal/newstock"
)

// CatalogHandler serves the category listing view and the item save API.
// The save endpoints stand in for the external store's save hook: every
// successful save invokes the on-save classifier for the saved target.
type CatalogHandler struct {
	db         *db.DB
	classifier *newstock.Classifier
	gate       *newstock.Gate
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(database *db.DB, classifier *newstock.Classifier, gate *newstock.Gate) *CatalogHandler {
	return &CatalogHandler{db: database, classifier: classifier, gate: gate}
}

// Category renders a category listing, newest first. The tracked category
// gets the new-stock meta query plus the visibility gate; every other
// category gets the default product listing.
func (h *CatalogHandler) Category(c fiber.Ctx) error {
	slug := c.Params("slug")

	cat, err := h.db.GetCategoryBySlug(c.Context(), slug)
	if errors.Is(err, db.ErrCategoryNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if err != nil {
		return err
	}

	var items []models.Item
	if cat.Slug == models.CategorySlug {
		listed, err := h.db.NewStockListing(c.Context(), cat.ID)
		if err != nil {
			return err
		}
		for i := range listed {
			visible, err := h.gate.Visible(c.Context(), listed[i].ID)
			if err != nil {
				slog.Error("visibility check failed", "item", listed[i].ID, "error", err)
			}
			if visible {
				items = append(items, listed[i])
			}
		}
	} else {
		items, err = h.db.CategoryListing(c.Context(), cat.ID)
		if err != nil {
			return err
		}
	}

	return c.Render("category", fiber.Map{
		"Title":    cat.Name,
		"Category": cat,
		"Items":    items,
	})
}

type createItemRequest struct {
	Name        string    `json:"name"`
	ProductType string    `json:"product_type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Categories  []string  `json:"categories"`
}

// CreateItem saves a top-level product and triggers on-save classification.
// Classification failures are logged, never surfaced: the save itself
// succeeded and the hook runs outside the interactive contract.
func (h *CatalogHandler) CreateItem(c fiber.Ctx) error {
	var req createItemRequest
	if err := c.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.ProductType != models.TypeSimple && req.ProductType != models.TypeVariable {
		return fiber.NewError(fiber.StatusBadRequest, "product_type must be simple or variable")
	}

	item := &models.Item{
		Kind:        models.KindProduct,
		ProductType: req.ProductType,
		Name:        req.Name,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
	}
	if err := h.db.CreateItem(c.Context(), item); err != nil {
		return err
	}

	for _, slug := range req.Categories {
		cat, err := h.db.GetCategoryBySlug(c.Context(), slug)
		if errors.Is(err, db.ErrCategoryNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := h.db.AssignCategory(c.Context(), item.ID, cat.ID); err != nil {
			return err
		}
	}

	if err := h.classifier.ProductSaved(c.Context(), item.ID); err != nil {
		slog.Error("on-save classification failed", "item", item.ID, "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

type createVariationRequest struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateVariation saves a child variation and triggers on-save
// classification.
func (h *CatalogHandler) CreateVariation(c fiber.Ctx) error {
	parentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	parent, err := h.db.GetItem(c.Context(), parentID)
	if errors.Is(err, db.ErrItemNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "item not found")
	}
	if err != nil {
		return err
	}
	if !parent.IsProduct() {
		return fiber.NewError(fiber.StatusBadRequest, "variations can only be added to products")
	}

	var req createVariationRequest
	if err := c.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	item := &models.Item{
		Kind:      models.KindVariation,
		ParentID:  &parent.ID,
		Name:      req.Name,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
	if err := h.db.CreateItem(c.Context(), item); err != nil {
		return err
	}

	if err := h.classifier.VariationSaved(c.Context(), item.ID); err != nil {
		slog.Error("on-save classification failed", "variation", item.ID, "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}
