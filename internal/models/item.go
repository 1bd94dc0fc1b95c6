package models

import (
	"time"

	"github.com/google/uuid"
)

// Item kinds. Products and variations share one id space in the catalog
// store; a variation is a child row pointing at its parent product.
const (
	KindProduct   = "product"
	KindVariation = "variation"
)

// Product types. Only products carry a type; a variable product is never
// classified itself, only its variations are.
const (
	TypeSimple   = "simple"
	TypeVariable = "variable"
)

// Item statuses.
const (
	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// Item is a catalog product or one of its variations.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	ProductType string     `json:"product_type,omitempty"` // products only
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`    // variations only
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsProduct returns true if the item is a top-level product.
func (i *Item) IsProduct() bool {
	return i.Kind == KindProduct
}

// IsVariation returns true if the item is a child variation.
func (i *Item) IsVariation() bool {
	return i.Kind == KindVariation
}

// IsSimple returns true for standalone products without variations.
func (i *Item) IsSimple() bool {
	return i.Kind == KindProduct && i.ProductType == TypeSimple
}

// IsVariable returns true for products whose children are sold individually.
func (i *Item) IsVariable() bool {
	return i.Kind == KindProduct && i.ProductType == TypeVariable
}

// IsPublished returns true if the item is publicly visible in the catalog.
func (i *Item) IsPublished() bool {
	return i.Status == StatusPublish
}

// ProcessedKey returns the kind-appropriate processed marker key.
func (i *Item) ProcessedKey() string {
	if i.IsVariation() {
		return MetaVariationProcessed
	}
	return MetaSimpleProcessed
}

// Category is a catalog category resolved by slug.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}
