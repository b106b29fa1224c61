package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"feedbackhub/internal/config"
	"feedbackhub/internal/errors"
	"feedbackhub/internal/gateway"
	"feedbackhub/internal/model"
	"feedbackhub/internal/session"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	store := session.NewStore(session.NewMemoryBackend("seed"))
	api := gateway.New(cfg.APIBaseURL, store, gateway.WithTimeout(cfg.APITimeout))

	// Let the feedback service create its default accounts
	msg, err := api.Bootstrap(ctx)
	switch {
	case errors.IsKind(err, errors.KindValidation):
		log.Println("Feedback service already initialized")
	case err != nil:
		log.Fatalf("Failed to initialize feedback service: %v", err)
	default:
		log.Printf("Feedback service initialized: %s", msg)
	}

	if _, err := api.Login(ctx, model.Credentials{Email: cfg.SeedAdminEmail, Password: cfg.SeedAdminPassword}); err != nil {
		log.Fatalf("Failed to login as %s: %v", cfg.SeedAdminEmail, err)
	}
	log.Printf("Logged in as %s", cfg.SeedAdminEmail)

	log.Println("Seeding categories...")
	created, existing, err := seedCategories(ctx, api, model.DefaultCategories)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New categories created: %d", created)
	log.Printf("  - Existing categories kept: %d", existing)
	log.Printf("  - Total categories processed: %d", created+existing)
}

// categoryAPI is what seeding needs from the gateway.
type categoryAPI interface {
	ListAllCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category model.Category) (*model.Category, error)
}

// seedCategories creates every name not present yet. Names compare case-insensitively.
func seedCategories(ctx context.Context, api categoryAPI, names []string) (created int, existing int, err error) {
	current, err := api.ListAllCategories(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("error listing categories: %w", err)
	}

	have := make(map[string]bool, len(current))
	for _, c := range current {
		have[strings.ToLower(strings.TrimSpace(c.Name))] = true
	}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if have[key] {
			existing++
			continue
		}
		if _, err := api.CreateCategory(ctx, model.Category{Name: name}); err != nil {
			return created, existing, fmt.Errorf("error creating category %q: %w", name, err)
		}
		have[key] = true
		created++
	}

	return created, existing, nil
}
