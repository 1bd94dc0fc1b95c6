package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/handlers"
	"github.com/armkeys/new-stock-product-control/internal/middleware"
	"github.com/armkeys/new-stock-product-control/internal/newstock"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, classifier *newstock.Classifier, gate *newstock.Gate, service *newstock.Service) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(database, service)
	catalogHandler := handlers.NewCatalogHandler(database, classifier, gate)
	healthHandler := handlers.NewHealthHandler(database)

	// Auth routes - OIDC is required for the admin surface
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. Operators must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)
	s.App.Get("/login", func(c fiber.Ctx) error {
		return c.Render("login", fiber.Map{"Title": "Login"})
	})

	// Admin surface (elevated permission)
	s.App.Get("/admin/new-stock", authMiddleware.RequireAuth, authMiddleware.RequireManager, adminHandler.Index)
	s.App.Post("/admin/new-stock/filter", authMiddleware.RequireAuth, authMiddleware.RequireManager, adminHandler.RunFilter)
	s.App.Post("/admin/new-stock/reset", authMiddleware.RequireAuth, authMiddleware.RequireManager, adminHandler.Reset)

	// Catalog save API (elevated permission); saves trigger the on-save
	// classifier.
	s.App.Post("/api/items", authMiddleware.RequireAuth, authMiddleware.RequireManager, catalogHandler.CreateItem)
	s.App.Post("/api/items/:id/variations", authMiddleware.RequireAuth, authMiddleware.RequireManager, catalogHandler.CreateVariation)

	// Public listing
	s.App.Get("/category/:slug", catalogHandler.Category)

	// Operational endpoints
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
