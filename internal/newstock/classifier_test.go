package newstock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/armkeys/new-stock-product-control/internal/models"
)

// classifierFixture wires a classifier over a memStore with the tracked
// category and a stored 2024-01-01..2024-01-31 range.
func classifierFixture() (*memStore, *Classifier, *models.Category) {
	store := newMemStore()
	cat := store.addCategory(models.CategorySlug)
	store.settings[models.SettingStartDate] = "2024-01-01"
	store.settings[models.SettingEndDate] = "2024-01-31"
	return store, NewClassifier(store, testResolver(store)), cat
}

func TestClassifier_InRangeProduct(t *testing.T) {
	store, classifier, cat := classifierFixture()
	item := store.addProduct(models.TypeSimple, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), cat.ID)

	if err := classifier.ProductSaved(context.Background(), item.ID); err != nil {
		t.Fatalf("ProductSaved() error = %v", err)
	}

	// Inverted-flag behavior: in-range items end with no is_new key.
	if store.hasMeta(item.ID, models.MetaIsNew) {
		t.Errorf("is_new key present for in-range item, want absent")
	}
	if v := store.meta[item.ID][models.MetaSimpleProcessed]; v != models.MetaYes {
		t.Errorf("processed = %q, want %q", v, models.MetaYes)
	}
}

func TestClassifier_OutOfRangeProduct(t *testing.T) {
	store, classifier, cat := classifierFixture()
	item := store.addProduct(models.TypeSimple, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), cat.ID)

	if err := classifier.ProductSaved(context.Background(), item.ID); err != nil {
		t.Fatalf("ProductSaved() error = %v", err)
	}

	if v := store.meta[item.ID][models.MetaIsNew]; v != models.MetaYes {
		t.Errorf("is_new = %q for out-of-range item, want %q", v, models.MetaYes)
	}
	if v := store.meta[item.ID][models.MetaSimpleProcessed]; v != models.MetaYes {
		t.Errorf("processed = %q, want %q", v, models.MetaYes)
	}
}

func TestClassifier_EndOfDayInclusive(t *testing.T) {
	store, classifier, cat := classifierFixture()
	item := store.addProduct(models.TypeSimple, time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC), cat.ID)

	if err := classifier.ProductSaved(context.Background(), item.ID); err != nil {
		t.Fatalf("ProductSaved() error = %v", err)
	}
	if store.hasMeta(item.ID, models.MetaIsNew) {
		t.Errorf("23:59:59 on the end date should classify in range")
	}
}

func TestClassifier_Idempotent(t *testing.T) {
	store, classifier, cat := classifierFixture()
	item := store.addProduct(models.TypeSimple, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), cat.ID)
	ctx := context.Background()

	if err := classifier.ProductSaved(ctx, item.ID); err != nil {
		t.Fatalf("first ProductSaved() error = %v", err)
	}

	// Shrink the stored range so a re-evaluation would flip the outcome;
	// the processed guard must prevent it.
	store.settings[models.SettingStartDate] = "2024-02-01"
	store.settings[models.SettingEndDate] = "2024-02-28"

	if err := classifier.ProductSaved(ctx, item.ID); err != nil {
		t.Fatalf("second ProductSaved() error = %v", err)
	}

	if store.hasMeta(item.ID, models.MetaIsNew) {
		t.Errorf("second save re-classified a processed item")
	}
	if v := store.meta[item.ID][models.MetaSimpleProcessed]; v != models.MetaYes {
		t.Errorf("processed = %q after second save, want %q", v, models.MetaYes)
	}
}

func TestClassifier_SilentNoOps(t *testing.T) {
	ctx := context.Background()

	t.Run("missing item", func(t *testing.T) {
		_, classifier, _ := classifierFixture()
		if err := classifier.ProductSaved(ctx, uuid.New()); err != nil {
			t.Errorf("ProductSaved() error = %v, want nil", err)
		}
	})

	t.Run("variable product", func(t *testing.T) {
		store, classifier, cat := classifierFixture()
		item := store.addProduct(models.TypeVariable, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), cat.ID)
		if err := classifier.ProductSaved(ctx, item.ID); err != nil {
			t.Fatalf("ProductSaved() error = %v", err)
		}
		if len(store.meta[item.ID]) != 0 {
			t.Errorf("variable product received metadata writes: %v", store.meta[item.ID])
		}
	})

	t.Run("not in tracked category", func(t *testing.T) {
		store, classifier, _ := classifierFixture()
		other := store.addCategory("clearance")
		item := store.addProduct(models.TypeSimple, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), other.ID)
		if err := classifier.ProductSaved(ctx, item.ID); err != nil {
			t.Fatalf("ProductSaved() error = %v", err)
		}
		if len(store.meta[item.ID]) != 0 {
			t.Errorf("uncategorized item received metadata writes: %v", store.meta[item.ID])
		}
	})

	t.Run("tracked category missing", func(t *testing.T) {
		store := newMemStore()
		store.settings[models.SettingStartDate] = "2024-01-01"
		store.settings[models.SettingEndDate] = "2024-01-31"
		classifier := NewClassifier(store, testResolver(store))
		item := store.addProduct(models.TypeSimple, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
		if err := classifier.ProductSaved(ctx, item.ID); err != nil {
			t.Fatalf("ProductSaved() error = %v", err)
		}
		if len(store.meta[item.ID]) != 0 {
			t.Errorf("item classified without tracked category: %v", store.meta[item.ID])
		}
	})

	t.Run("zero creation timestamp", func(t *testing.T) {
		store, classifier, cat := classifierFixture()
		item := store.addProduct(models.TypeSimple, time.Time{}, cat.ID)
		if err := classifier.ProductSaved(ctx, item.ID); err != nil {
			t.Fatalf("ProductSaved() error = %v", err)
		}
		if len(store.meta[item.ID]) != 0 {
			t.Errorf("item without timestamp received metadata writes: %v", store.meta[item.ID])
		}
	})
}

func TestClassifier_Variation(t *testing.T) {
	ctx := context.Background()

	t.Run("in range via parent membership", func(t *testing.T) {
		store, classifier, cat := classifierFixture()
		parent := store.addProduct(models.TypeVariable, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), cat.ID)
		variation := store.addVariation(parent.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

		if err := classifier.VariationSaved(ctx, variation.ID); err != nil {
			t.Fatalf("VariationSaved() error = %v", err)
		}
		if store.hasMeta(variation.ID, models.MetaIsNew) {
			t.Errorf("is_new key present for in-range variation, want absent")
		}
		if v := store.meta[variation.ID][models.MetaVariationProcessed]; v != models.MetaYes {
			t.Errorf("variation processed = %q, want %q", v, models.MetaYes)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		store, classifier, cat := classifierFixture()
		parent := store.addProduct(models.TypeVariable, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), cat.ID)
		variation := store.addVariation(parent.ID, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

		if err := classifier.VariationSaved(ctx, variation.ID); err != nil {
			t.Fatalf("VariationSaved() error = %v", err)
		}
		if v := store.meta[variation.ID][models.MetaIsNew]; v != models.MetaYes {
			t.Errorf("is_new = %q for out-of-range variation, want %q", v, models.MetaYes)
		}
	})

	t.Run("excluded variation untouched", func(t *testing.T) {
		store, classifier, cat := classifierFixture()
		parent := store.addProduct(models.TypeVariable, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), cat.ID)
		variation := store.addVariation(parent.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		store.SetMeta(ctx, variation.ID, models.MetaExcludeVariation, models.MetaYes)

		if err := classifier.VariationSaved(ctx, variation.ID); err != nil {
			t.Fatalf("VariationSaved() error = %v", err)
		}
		if len(store.meta[variation.ID]) != 1 {
			t.Errorf("excluded variation received metadata writes: %v", store.meta[variation.ID])
		}
	})

	t.Run("parent outside tracked category", func(t *testing.T) {
		store, classifier, _ := classifierFixture()
		parent := store.addProduct(models.TypeVariable, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
		variation := store.addVariation(parent.ID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

		if err := classifier.VariationSaved(ctx, variation.ID); err != nil {
			t.Fatalf("VariationSaved() error = %v", err)
		}
		if len(store.meta[variation.ID]) != 0 {
			t.Errorf("variation with untracked parent received writes: %v", store.meta[variation.ID])
		}
	})

	t.Run("product id is a no-op", func(t *testing.T) {
		store, classifier, cat := classifierFixture()
		item := store.addProduct(models.TypeSimple, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), cat.ID)
		if err := classifier.VariationSaved(ctx, item.ID); err != nil {
			t.Fatalf("VariationSaved() error = %v", err)
		}
		if len(store.meta[item.ID]) != 0 {
			t.Errorf("product classified through variation path: %v", store.meta[item.ID])
		}
	})
}
