package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/app"
	"github.com/nekogravitycat/hotel-booking-backend/internal/config"
	"github.com/nekogravitycat/hotel-booking-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN, int32(cfg.DBMaxConns))
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("failed to migrate db: %v", err)
		}
	}

	container, err := app.NewContainer(app.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		DBPool:             pool,
		JWTSecret:          cfg.JWTSecret,
		JWTTTL:             cfg.JWTAccessTokenTTL,
		BcryptCost:         cfg.BcryptCost,
		StorageDir:         cfg.StorageDir,
		MaxUploadBytes:     cfg.MaxUploadBytes,
		RequestTimeout:     cfg.RequestTimeout,
		PricingConcurrency: cfg.PricingConcurrency,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
