package service

import (
	"github.com/dom/hero-companion/internal/cache"
	"github.com/dom/hero-companion/internal/catalog"
	"github.com/dom/hero-companion/internal/config"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/dom/hero-companion/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Catalog *CatalogService
	Profile *ProfileService
	Advisor *AdvisorService
}

// NewServices wires every service. store may be nil to run without a cache.
func NewServices(repos *repository.Repositories, cfg *config.Config, bundle *catalog.Bundle, store cache.Store, clock engine.Clock) *Services {
	catalogService := NewCatalogService(repos.Hero, repos.Event, repos.Equipment, bundle, store, cfg.CatalogCacheTTL)
	profileService := NewProfileService(repos.Profile, repos.Snapshot, catalogService, clock)

	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, cfg),
		Catalog: catalogService,
		Profile: profileService,
		Advisor: NewAdvisorService(catalogService, profileService, clock),
	}
}
