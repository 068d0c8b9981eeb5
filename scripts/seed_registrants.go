//go:build ignore

// Seeds the configured storage backend with a handful of registrants for
// local development. Run with: go run scripts/seed_registrants.go
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jlbbacs/quick-registration/internal/config"
	"github.com/jlbbacs/quick-registration/internal/logging"
	"github.com/jlbbacs/quick-registration/internal/models"
	"github.com/jlbbacs/quick-registration/internal/services"
	"github.com/jlbbacs/quick-registration/internal/storage"
)

func main() {
	if err := logging.InitLogger(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	switch config.AppConfig.StorageBackend {
	case "redis":
		config.InitRedis()
	case "mongodb":
		config.InitMongoDB()
	}

	store, err := storage.NewFromConfig()
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	services.InitRegistrantService(store)

	ctx := context.Background()
	seeds := []models.RegistrantInput{
		{
			FullName:    "Alice Smith",
			Email:       "alice.smith@example.com",
			Phone:       "+14155550101",
			Address:     "12 Oak Street, Springfield",
			Gender:      models.GenderFemale,
			DateOfBirth: "1991-03-14",
		},
		{
			FullName:    "Bob Jones",
			Email:       "bob.jones@example.com",
			Phone:       "+14155550102",
			Address:     "34 Pine Avenue, Springfield",
			Gender:      models.GenderMale,
			DateOfBirth: "1987-11-02",
		},
		{
			FullName:    "Alice Brown",
			Email:       "alice.brown@example.com",
			Phone:       "+14155550103",
			Address:     "56 Maple Road, Springfield",
			Gender:      models.GenderFemale,
			DateOfBirth: "1995-07-21",
		},
	}

	for _, seed := range seeds {
		registrant, err := services.RegistrantServiceInstance.Create(ctx, &seed)
		if err != nil {
			log.Fatalf("failed to seed registrant %q: %v", seed.FullName, err)
		}
		fmt.Printf("seeded %s (%s)\n", registrant.FullName, registrant.ID)
	}
}
