package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/armkeys/new-stock-product-control/internal/config"
	"github.com/armkeys/new-stock-product-control/internal/db"
	"github.com/armkeys/new-stock-product-control/internal/jobs"
	"github.com/armkeys/new-stock-product-control/internal/metrics"
	"github.com/armkeys/new-stock-product-control/internal/models"
	"github.com/armkeys/new-stock-product-control/internal/newstock"
	"github.com/armkeys/new-stock-product-control/internal/server"
)

func main() {
	deactivate := flag.Bool("deactivate", false, "strip all classification metadata and exit")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Ensure categories from the optional yaml config, including the
	// tracked category's display name.
	if err := ensureCategories(ctx, database); err != nil {
		log.Fatalf("Failed to ensure categories: %v", err)
	}

	loc := cfg.Location()
	resolver := newstock.NewResolver(database, loc)
	classifier := newstock.NewClassifier(database, resolver)
	gate := newstock.NewGate(database)
	service := newstock.NewService(database, database, loc)
	sweeper := newstock.NewSweeper(database, resolver)

	if *deactivate {
		if err := service.DeactivateCleanup(ctx); err != nil {
			log.Fatalf("Deactivation cleanup failed: %v", err)
		}
		log.Println("Deactivation cleanup complete")
		return
	}

	metrics.Init()

	// Schedule the daily reconciliation sweep
	sweepJob := jobs.NewSweepJob(sweeper, cfg.SweepSchedule)
	if err := sweepJob.Start(); err != nil {
		log.Fatalf("Failed to schedule sweep: %v", err)
	}
	defer sweepJob.Stop()

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, classifier, gate, service); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// ensureCategories creates the tracked category and any categories declared
// in config.yaml. Absent config leaves the catalog untouched apart from the
// tracked category itself.
func ensureCategories(ctx context.Context, database *db.DB) error {
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		return err
	}

	trackedName := "New Stock"
	if yamlCfg != nil && yamlCfg.TrackedCategory.Name != "" {
		trackedName = yamlCfg.TrackedCategory.Name
	}
	if err := database.CreateCategory(ctx, &models.Category{Slug: models.CategorySlug, Name: trackedName}); err != nil {
		return err
	}

	if yamlCfg == nil {
		return nil
	}
	for _, cat := range yamlCfg.Categories {
		if cat.Slug == "" || cat.Slug == models.CategorySlug {
			continue
		}
		if err := database.CreateCategory(ctx, &models.Category{Slug: cat.Slug, Name: cat.Name}); err != nil {
			return err
		}
	}
	return nil
}
