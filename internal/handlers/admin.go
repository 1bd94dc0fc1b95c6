package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/models"
	"github.com/armkeys/new-stock-product-control/internal/newstock"
	"github.com/armkeys/new-stock-product-control/internal/validation"
)

// AdminHandler serves the new-stock control page and its two actions.
// Permission is enforced by the RequireManager middleware in front of the
// action routes.
type AdminHandler struct {
	db      *db.DB
	service *newstock.Service
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(database *db.DB, service *newstock.Service) *AdminHandler {
	return &AdminHandler{db: database, service: service}
}

// Index renders the control page with the date-range form and any status
// notice carried in from the last action's redirect.
func (h *AdminHandler) Index(c fiber.Ctx) error {
	startVal, err := h.db.GetSetting(c.Context(), models.SettingStartDate)
	if err != nil {
		return err
	}
	endVal, err := h.db.GetSetting(c.Context(), models.SettingEndDate)
	if err != nil {
		return err
	}

	// Mirror the resolver defaults so the form is always pre-filled.
	if startVal == "" {
		startVal = time.Now().AddDate(0, 0, -30).Format(validation.DateLayout)
	}
	if endVal == "" {
		endVal = time.Now().Format(validation.DateLayout)
	}

	return c.Render("admin", fiber.Map{
		"Title":      "New Stock Control",
		"StartDate":  startVal,
		"EndDate":    endVal,
		"Success":    c.Query("success") == "1",
		"Reset":      c.Query("reset") == "1",
		"ManualKeep": c.Query("manual_keep") == "1",
	})
}

// RunFilter handles the manual filter run. Validation and not-found
// failures are terminal; on success the operator is redirected back with
// the success and manual_keep flags.
func (h *AdminHandler) RunFilter(c fiber.Ctx) error {
	startDate := c.FormValue("start_date")
	endDate := c.FormValue("end_date")

	err := h.service.RunFilter(c.Context(), startDate, endDate)
	if errors.Is(err, db.ErrCategoryNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if errors.Is(err, newstock.ErrInvalidDates) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	return c.Redirect().To("/admin/new-stock?success=1&manual_keep=1")
}

// Reset handles the reset action, clearing all classification state for the
// tracked category.
func (h *AdminHandler) Reset(c fiber.Ctx) error {
	err := h.service.ResetAll(c.Context())
	if errors.Is(err, db.ErrCategoryNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "category not found")
	}
	if err != nil {
		return err
	}

	return c.Redirect().To("/admin/new-stock?reset=1")
}
