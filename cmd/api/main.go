// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhuggee/marketplace-backend/internal/config"
	"github.com/jhuggee/marketplace-backend/internal/domain/payment"
	"github.com/jhuggee/marketplace-backend/internal/infrastructure/database/postgres"
	"github.com/jhuggee/marketplace-backend/internal/infrastructure/database/redis"
	"github.com/jhuggee/marketplace-backend/internal/interfaces/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	migration := postgres.NewMigration(db.DB)
	if err := migration.Run(cfg.Security.AdminPhone, cfg.Security.AdminPassword); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	gateway := payment.NewCashfreeService(&cfg.Cashfree)

	log.Println("✅ All systems operational!")

	server := http.NewServer(cfg, db.DB, redisClient.GetClient(), gateway)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}
