package newstock

import (
	"context"
	"log/slog"
	"time"

	"github.com/armkeys/new-stock-product-control/internal/models"
	"github.com/armkeys/new-stock-product-control/internal/validation"
)

// Service exposes the operator-triggered bulk operations: the manual filter
// run, the reset, and the deactivation cleanup. Authorization is the
// caller's concern; the service assumes an elevated caller.
type Service struct {
	catalog  Catalog
	settings Settings
	scanner  *Scanner
	loc      *time.Location
}

// NewService creates the bulk-operation service.
func NewService(catalog Catalog, settings Settings, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		catalog:  catalog,
		settings: settings,
		scanner:  NewScanner(catalog),
		loc:      loc,
	}
}

// RunFilter persists the submitted range as the new default and pins every
// in-range item in the tracked category (processed + manual_keep). Items
// outside the range are left untouched; expiry is the sweep's job. Returns
// db.ErrCategoryNotFound if the tracked category does not exist and
// ErrInvalidDates on bad input.
func (s *Service) RunFilter(ctx context.Context, startDate, endDate string) error {
	cat, err := s.catalog.GetCategoryBySlug(ctx, models.CategorySlug)
	if err != nil {
		return err
	}

	if !validation.ValidateDate(startDate) || !validation.ValidateDate(endDate) {
		return ErrInvalidDates
	}

	if err := s.settings.SetSetting(ctx, models.SettingStartDate, startDate); err != nil {
		return err
	}
	if err := s.settings.SetSetting(ctx, models.SettingEndDate, endDate); err != nil {
		return err
	}

	start, _ := validation.ParseDate(startDate, s.loc)
	end, _ := validation.ParseDate(endDate, s.loc)
	end = endOfDay(end)

	pin := func(item *models.Item) {
		if !inRange(item.CreatedAt, start, end) {
			return
		}
		if err := s.catalog.SetMeta(ctx, item.ID, item.ProcessedKey(), models.MetaYes); err != nil {
			slog.Error("failed to mark item processed", "item", item.ID, "error", err)
			return
		}
		if err := s.catalog.SetMeta(ctx, item.ID, models.MetaManualKeep, models.MetaYes); err != nil {
			slog.Error("failed to pin item", "item", item.ID, "error", err)
		}
	}

	if err := s.scanner.ForEachVariation(ctx, cat.ID, pin); err != nil {
		return err
	}
	if err := s.scanner.ForEachSimple(ctx, cat.ID, pin); err != nil {
		return err
	}

	slog.Info("manual filter run completed", "start", startDate, "end", endDate)
	return nil
}

// ResetAll clears every classification and pin key from the tracked
// category, returning its items to unclassified state. Idempotent.
func (s *Service) ResetAll(ctx context.Context) error {
	cat, err := s.catalog.GetCategoryBySlug(ctx, models.CategorySlug)
	if err != nil {
		return err
	}

	clear := func(item *models.Item) {
		for _, key := range []string{item.ProcessedKey(), models.MetaIsNew, models.MetaManualKeep} {
			if err := s.catalog.DeleteMeta(ctx, item.ID, key); err != nil {
				slog.Error("failed to clear metadata", "item", item.ID, "key", key, "error", err)
			}
		}
	}

	if err := s.scanner.ForEachVariation(ctx, cat.ID, clear); err != nil {
		return err
	}
	if err := s.scanner.ForEachSimple(ctx, cat.ID, clear); err != nil {
		return err
	}

	slog.Info("new stock reset completed")
	return nil
}

// DeactivateCleanup strips the engine's classification keys from every item
// that carries any of them, across all statuses. The manual_keep pin is
// left in place. Run at system teardown, after the sweep schedule is
// stopped.
func (s *Service) DeactivateCleanup(ctx context.Context) error {
	keys := []string{models.MetaIsNew, models.MetaSimpleProcessed, models.MetaVariationProcessed}

	items, err := s.catalog.ItemsWithMeta(ctx, keys, false)
	if err != nil {
		return err
	}

	for i := range items {
		for _, key := range keys {
			if err := s.catalog.DeleteMeta(ctx, items[i].ID, key); err != nil {
				slog.Error("deactivation cleanup failed for item", "item", items[i].ID, "key", key, "error", err)
			}
		}
	}

	slog.Info("deactivation cleanup completed", "items", len(items))
	return nil
}
