package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthnet-hms/clinic-service/internal/activity"
	"github.com/healthnet-hms/clinic-service/internal/auth"
	"github.com/healthnet-hms/clinic-service/internal/db"
	httpserver "github.com/healthnet-hms/clinic-service/internal/http"
	"github.com/healthnet-hms/clinic-service/internal/identity"
	"github.com/healthnet-hms/clinic-service/internal/messaging"
	"github.com/healthnet-hms/clinic-service/internal/telemetry"
)

func main() {
	log.Println("clinic-service starting")

	ctx := context.Background()

	// Telemetry first so everything below is instrumented. Failures degrade
	// to an uninstrumented service, never a dead one.
	otelProvider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig())
	if err != nil {
		log.Printf("Warning: OpenTelemetry init failed: %v", err)
	}

	var metrics *telemetry.Metrics
	if m, err := telemetry.InitMetrics(); err != nil {
		log.Printf("Warning: metrics init failed: %v", err)
	} else {
		metrics = m
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Event publisher is optional: without RabbitMQ the service runs and
	// simply skips publishing.
	var publisher messaging.PublisherInterface
	if p, err := messaging.NewPublisher(); err != nil {
		log.Printf("Warning: RabbitMQ unavailable, events disabled: %v", err)
	} else {
		publisher = p
		defer p.Close()
	}

	verifier := auth.NewVerifier(auth.LoadConfig())

	permsPath := os.Getenv("PERMISSIONS_FILE")
	if permsPath == "" {
		permsPath = "config/permissions.yml"
	}
	perms, err := auth.LoadPermissions(permsPath)
	if err != nil {
		log.Fatalf("Failed to load permissions from %s: %v", permsPath, err)
	}

	// Seed the default admin account on first run.
	identityService := identity.NewService(
		identity.NewRepository(database, publisher),
		verifier,
		activity.NewService(activity.NewRepository(database)),
	)
	if err := identityService.BootstrapAdmin(ctx); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	router := httpserver.SetupRouter(database, verifier, perms, publisher, metrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      httpserver.CORSMiddleware(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("✓ clinic-service listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	if otelProvider != nil {
		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during telemetry shutdown: %v", err)
		}
	}

	log.Println("✓ clinic-service stopped")
}
