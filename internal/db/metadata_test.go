package db

import (
	"context"
	"testing"
	"time"

	"github.com/armkeys/new-stock-product-control/internal/models"
)

func TestMetaLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	item := createProduct(t, db, models.TypeSimple, time.Now())

	// Absent key reads as empty string, not an error.
	got, err := db.GetMeta(ctx, item.ID, models.MetaIsNew)
	if err != nil {
		t.Fatalf("GetMeta(absent) error = %v", err)
	}
	if got != "" {
		t.Errorf("GetMeta(absent) = %q, want empty", got)
	}

	if err := db.SetMeta(ctx, item.ID, models.MetaIsNew, models.MetaNo); err != nil {
		t.Fatalf("SetMeta() error = %v", err)
	}

	// Second write upserts, no duplicate row.
	if err := db.SetMeta(ctx, item.ID, models.MetaIsNew, models.MetaYes); err != nil {
		t.Fatalf("SetMeta(upsert) error = %v", err)
	}
	got, err = db.GetMeta(ctx, item.ID, models.MetaIsNew)
	if err != nil {
		t.Fatalf("GetMeta() error = %v", err)
	}
	if got != models.MetaYes {
		t.Errorf("GetMeta() = %q, want %q", got, models.MetaYes)
	}

	var count int
	if err := db.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM item_meta WHERE item_id = $1 AND meta_key = $2",
		item.ID, models.MetaIsNew).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 1 {
		t.Errorf("meta rows = %d after upsert, want 1", count)
	}

	if err := db.DeleteMeta(ctx, item.ID, models.MetaIsNew); err != nil {
		t.Fatalf("DeleteMeta() error = %v", err)
	}
	got, _ = db.GetMeta(ctx, item.ID, models.MetaIsNew)
	if got != "" {
		t.Errorf("GetMeta() after delete = %q, want empty", got)
	}

	// Deleting a missing key is a no-op.
	if err := db.DeleteMeta(ctx, item.ID, models.MetaIsNew); err != nil {
		t.Errorf("DeleteMeta(missing) error = %v", err)
	}
}

func TestSettings(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	got, err := db.GetSetting(ctx, models.SettingStartDate)
	if err != nil {
		t.Fatalf("GetSetting(absent) error = %v", err)
	}
	if got != "" {
		t.Errorf("GetSetting(absent) = %q, want empty", got)
	}

	if err := db.SetSetting(ctx, models.SettingStartDate, "2024-01-01"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if err := db.SetSetting(ctx, models.SettingStartDate, "2024-02-01"); err != nil {
		t.Fatalf("SetSetting(upsert) error = %v", err)
	}

	got, err = db.GetSetting(ctx, models.SettingStartDate)
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if got != "2024-02-01" {
		t.Errorf("GetSetting() = %q, want 2024-02-01", got)
	}
}
