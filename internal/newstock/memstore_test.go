package newstock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/models"
)

// memStore is an in-memory Catalog + Settings implementation for tests.
type memStore struct {
	items      map[uuid.UUID]*models.Item
	categories map[string]*models.Category
	membership map[uuid.UUID][]uuid.UUID
	meta       map[uuid.UUID]map[string]string
	settings   map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		items:      make(map[uuid.UUID]*models.Item),
		categories: make(map[string]*models.Category),
		membership: make(map[uuid.UUID][]uuid.UUID),
		meta:       make(map[uuid.UUID]map[string]string),
		settings:   make(map[string]string),
	}
}

func (m *memStore) addCategory(slug string) *models.Category {
	cat := &models.Category{ID: uuid.New(), Slug: slug, Name: slug}
	m.categories[slug] = cat
	return cat
}

func (m *memStore) addItem(item *models.Item, categoryIDs ...uuid.UUID) *models.Item {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Status == "" {
		item.Status = models.StatusPublish
	}
	m.items[item.ID] = item
	m.membership[item.ID] = append(m.membership[item.ID], categoryIDs...)
	return item
}

func (m *memStore) addProduct(productType string, createdAt time.Time, categoryIDs ...uuid.UUID) *models.Item {
	return m.addItem(&models.Item{
		Kind:        models.KindProduct,
		ProductType: productType,
		Name:        "product",
		CreatedAt:   createdAt,
	}, categoryIDs...)
}

func (m *memStore) addVariation(parentID uuid.UUID, createdAt time.Time) *models.Item {
	return m.addItem(&models.Item{
		Kind:      models.KindVariation,
		ParentID:  &parentID,
		Name:      "variation",
		CreatedAt: createdAt,
	})
}

func (m *memStore) GetItem(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, db.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *memStore) GetCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	cat, ok := m.categories[slug]
	if !ok {
		return nil, db.ErrCategoryNotFound
	}
	return cat, nil
}

func (m *memStore) GetCategoryIDs(_ context.Context, itemID uuid.UUID) ([]uuid.UUID, error) {
	return m.membership[itemID], nil
}

func (m *memStore) GetProductsInCategory(_ context.Context, categoryID uuid.UUID) ([]models.Item, error) {
	var out []models.Item
	for id, item := range m.items {
		if !item.IsProduct() || !item.IsPublished() {
			continue
		}
		for _, catID := range m.membership[id] {
			if catID == categoryID {
				out = append(out, *item)
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) GetChildren(_ context.Context, parentID uuid.UUID) ([]models.Item, error) {
	var out []models.Item
	for _, item := range m.items {
		if item.IsVariation() && item.ParentID != nil && *item.ParentID == parentID && item.IsPublished() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memStore) ItemsWithMeta(_ context.Context, keys []string, publishedOnly bool) ([]models.Item, error) {
	var out []models.Item
	for id, item := range m.items {
		if publishedOnly && !item.IsPublished() {
			continue
		}
		for _, key := range keys {
			if _, ok := m.meta[id][key]; ok {
				out = append(out, *item)
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) GetMeta(_ context.Context, itemID uuid.UUID, key string) (string, error) {
	return m.meta[itemID][key], nil
}

func (m *memStore) SetMeta(_ context.Context, itemID uuid.UUID, key, value string) error {
	if m.meta[itemID] == nil {
		m.meta[itemID] = make(map[string]string)
	}
	m.meta[itemID][key] = value
	return nil
}

func (m *memStore) DeleteMeta(_ context.Context, itemID uuid.UUID, key string) error {
	delete(m.meta[itemID], key)
	return nil
}

func (m *memStore) GetSetting(_ context.Context, key string) (string, error) {
	return m.settings[key], nil
}

func (m *memStore) SetSetting(_ context.Context, key, value string) error {
	m.settings[key] = value
	return nil
}

// hasMeta reports whether the key exists at all, any value.
func (m *memStore) hasMeta(itemID uuid.UUID, key string) bool {
	_, ok := m.meta[itemID][key]
	return ok
}

var (
	_ Catalog  = (*memStore)(nil)
	_ Settings = (*memStore)(nil)
)
