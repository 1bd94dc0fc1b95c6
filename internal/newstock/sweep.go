package newstock

import (
	"context"
	"log/slog"
	"time"

	"github.com/armkeys/new-stock-product-control/internal/metrics"
	"github.com/armkeys/new-stock-product-control/internal/models"
)

// Sweeper re-evaluates every previously flagged item against the current
// effective range, de-classifying items that have aged out. The candidate
// set is metadata-existence based, not category based: anything still
// carrying the is_new key is a candidate, wherever it now lives.
type Sweeper struct {
	catalog  Catalog
	resolver *Resolver
}

// NewSweeper creates a reconciliation sweeper.
func NewSweeper(catalog Catalog, resolver *Resolver) *Sweeper {
	return &Sweeper{catalog: catalog, resolver: resolver}
}

// Sweep runs one reconciliation pass. The range is resolved once so all
// candidates see a consistent window. Per-item failures are logged and the
// pass continues; a crash mid-pass leaves partially updated state that the
// next pass self-corrects.
func (s *Sweeper) Sweep(ctx context.Context) error {
	start, end, err := s.resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	candidates, err := s.catalog.ItemsWithMeta(ctx, []string{models.MetaIsNew}, true)
	if err != nil {
		return err
	}

	slog.Info("reconciliation sweep started",
		"candidates", len(candidates),
		"range_start", start.Format(time.RFC3339),
		"range_end", end.Format(time.RFC3339))

	for i := range candidates {
		if err := s.sweepOne(ctx, &candidates[i], start, end); err != nil {
			slog.Error("sweep failed for item", "item", candidates[i].ID, "error", err)
		}
	}

	metrics.RecordSweep()
	return nil
}

// sweepOne applies the expiry decision to one candidate. An out-of-range
// item without a pin is returned to never-processed state so a future save
// or manual run can re-evaluate it. In-range or pinned items keep their
// flags, but the pin itself is single-use and is consumed here.
func (s *Sweeper) sweepOne(ctx context.Context, item *models.Item, start, end time.Time) error {
	keep, err := s.catalog.GetMeta(ctx, item.ID, models.MetaManualKeep)
	if err != nil {
		return err
	}

	if !inRange(item.CreatedAt, start, end) && !models.IsYes(keep) {
		for _, key := range []string{models.MetaIsNew, models.MetaSimpleProcessed, models.MetaVariationProcessed} {
			if err := s.catalog.DeleteMeta(ctx, item.ID, key); err != nil {
				return err
			}
		}
		metrics.RecordSweepExpiry()
		return nil
	}

	if err := s.catalog.DeleteMeta(ctx, item.ID, models.MetaManualKeep); err != nil {
		return err
	}
	if models.IsYes(keep) {
		metrics.RecordPinExpiry()
	}
	return nil
}
