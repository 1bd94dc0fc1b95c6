package newstock

import (
	"context"
	"time"

	"github.com/armkeys/new-stock-product-control/internal/models"
	"github.com/armkeys/new-stock-product-control/internal/validation"
)

// defaultRangeDays is the trailing window substituted when no valid range is
// stored.
const defaultRangeDays = 30

// RangeHook post-processes a resolved range before it is used. Hooks run in
// registration order; each sees the previous hook's output.
type RangeHook func(start, end time.Time) (time.Time, time.Time)

// Resolver computes the currently effective "new" window from stored
// configuration. Side-effect free; call once per classification or sweep
// pass so every item in the pass sees the same range.
type Resolver struct {
	settings Settings
	loc      *time.Location
	now      func() time.Time
	hooks    []RangeHook
}

// NewResolver creates a resolver reading the persisted range in the given
// time zone.
func NewResolver(settings Settings, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{
		settings: settings,
		loc:      loc,
		now:      time.Now,
	}
}

// Use registers a post-processing hook.
func (r *Resolver) Use(hook RangeHook) {
	r.hooks = append(r.hooks, hook)
}

// Resolve returns the effective range: start date at 00:00:00 through end
// date at 23:59:59. Missing dates fall back to the 30-day-trailing default;
// an unparseable or inverted stored pair is discarded for the full default
// pair rather than failing. Errors are store failures only.
func (r *Resolver) Resolve(ctx context.Context) (time.Time, time.Time, error) {
	startStr, err := r.settings.GetSetting(ctx, models.SettingStartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endStr, err := r.settings.GetSetting(ctx, models.SettingEndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	today := r.now().In(r.loc)
	defStart := today.AddDate(0, 0, -defaultRangeDays).Format(validation.DateLayout)
	defEnd := today.Format(validation.DateLayout)

	if startStr == "" {
		startStr = defStart
	}
	if endStr == "" {
		endStr = defEnd
	}

	start, serr := validation.ParseDate(startStr, r.loc)
	end, eerr := validation.ParseDate(endStr, r.loc)
	if serr != nil || eerr != nil || start.After(end) {
		start, _ = validation.ParseDate(defStart, r.loc)
		end, _ = validation.ParseDate(defEnd, r.loc)
	}

	end = endOfDay(end)

	for _, hook := range r.hooks {
		start, end = hook(start, end)
	}

	return start, end, nil
}

// endOfDay converts a midnight instant to the inclusive 23:59:59 instant of
// the same calendar day.
func endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())
}
