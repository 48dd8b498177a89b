package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/hero-companion/internal/api"
	"github.com/dom/hero-companion/internal/cache"
	"github.com/dom/hero-companion/internal/catalog"
	"github.com/dom/hero-companion/internal/config"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/dom/hero-companion/internal/repository/postgres"
	"github.com/dom/hero-companion/internal/service"
	"github.com/dom/hero-companion/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Optional catalog cache
	var store cache.Store
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("WARN [main] redis unavailable, catalog cache disabled: %v", err)
		} else {
			defer redisCache.Close()
			store = redisCache
		}
	}

	bundle, err := catalog.Load()
	if err != nil {
		log.Fatalf("failed to load catalog bundle: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize services
	services := service.NewServices(repos, cfg, bundle, store, engine.SystemClock{})

	// Initialize WebSocket hub and the event clock that feeds it
	hub := websocket.NewHub(services.Advisor)
	go hub.Run()

	eventClock := websocket.NewEventClock(hub, services.Advisor, cfg.EventTick())
	eventClock.Start()

	// Initialize router
	router := api.NewRouter(services, hub, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s (catalog %s)", cfg.Port, bundle.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	eventClock.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	hub.Stop()

	log.Println("Server stopped")
}
