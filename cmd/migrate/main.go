package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/auth"
	"github.com/healthnet-hms/clinic-service/internal/db"
	"github.com/healthnet-hms/clinic-service/internal/identity"
)

// One-shot migration job: creates the healthnet schema and seeds the default
// admin account, then exits. Suitable for an init container.
func main() {
	log.Println("Migration Job - Starting")

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	identityService := identity.NewService(
		identity.NewRepository(database, nil),
		auth.NewVerifier(auth.LoadConfig()),
		nil,
	)
	if err := identityService.BootstrapAdmin(ctx); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	log.Println("✓ Migration completed successfully")
	os.Exit(0)
}
