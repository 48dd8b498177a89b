package api

import (
	"net/http"

	"github.com/dom/hero-companion/internal/api/handlers"
	"github.com/dom/hero-companion/internal/api/middleware"
	"github.com/dom/hero-companion/internal/config"
	"github.com/dom/hero-companion/internal/service"
	"github.com/dom/hero-companion/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var corsOptions = cors.Options{
	AllowedOrigins:       []string{"*"},
	AllowedMethods:       []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	AllowedHeaders:       []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	ExposedHeaders:       []string{"X-Request-ID"},
	MaxAge:               300,
	OptionsSuccessStatus: http.StatusNoContent,
}

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(corsOptions))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	heroHandler := handlers.NewHeroHandler(services.Catalog)
	eventHandler := handlers.NewEventHandler(services.Advisor)
	profileHandler := handlers.NewProfileHandler(services.Profile)
	advisorHandler := handlers.NewAdvisorHandler(services.Advisor)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Delete("/me", authHandler.DeleteAccount)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Catalog routes
		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroHandler.GetAll)
			r.Get("/{id}", heroHandler.Get)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.GetAll)
			r.Get("/reset", eventHandler.Reset)
			r.Get("/{id}", eventHandler.Get)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Post("/catalog/sync", heroHandler.Sync)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Put("/", profileHandler.SaveProfile)
				r.Post("/roster/{heroId}", profileHandler.RecruitHero)
				r.Delete("/roster/{heroId}", profileHandler.UnrecruitHero)
				r.Patch("/roster/{heroId}", profileHandler.UpdateHero)
				r.Post("/snapshots", profileHandler.RecordSnapshot)
				r.Get("/snapshots", profileHandler.ListSnapshots)
			})

			r.Route("/advisor", func(r chi.Router) {
				r.Get("/influence", advisorHandler.Influence)
				r.Get("/upgrades", advisorHandler.Upgrades)
				r.Get("/resources", advisorHandler.Resources)
				r.Get("/simulate", advisorHandler.Simulate)
				r.Get("/events", advisorHandler.Events)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
