package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dom/hero-companion/internal/cache"
	"github.com/dom/hero-companion/internal/catalog"
	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/repository"
)

var (
	ErrHeroNotFound  = errors.New("hero not found")
	ErrEventNotFound = errors.New("event not found")
)

const (
	cacheKindHeroes    = "heroes"
	cacheKindEvents    = "events"
	cacheKindEquipment = "equipment"
)

// CatalogService serves catalog data from the cache, then postgres, seeding
// postgres from the embedded bundle the first time it is found empty.
type CatalogService struct {
	heroRepo      repository.HeroRepository
	eventRepo     repository.EventRepository
	equipmentRepo repository.EquipmentRepository
	bundle        *catalog.Bundle
	store         cache.Store
	ttl           time.Duration

	seedMu sync.Mutex
	seeded bool
}

func NewCatalogService(
	heroRepo repository.HeroRepository,
	eventRepo repository.EventRepository,
	equipmentRepo repository.EquipmentRepository,
	bundle *catalog.Bundle,
	store cache.Store,
	ttl time.Duration,
) *CatalogService {
	return &CatalogService{
		heroRepo:      heroRepo,
		eventRepo:     eventRepo,
		equipmentRepo: equipmentRepo,
		bundle:        bundle,
		store:         store,
		ttl:           ttl,
	}
}

// Version returns the bundled catalog version
func (s *CatalogService) Version() string {
	return s.bundle.Version
}

// SyncResult reports what a catalog sync wrote
type SyncResult struct {
	Version string `json:"version"`
	Heroes  int    `json:"heroes"`
	Events  int    `json:"events"`
	Pets    int    `json:"pets"`
	Relics  int    `json:"relics"`
	Skins   int    `json:"skins"`
}

// SyncFromBundle upserts the embedded catalog into postgres and drops cached entries
func (s *CatalogService) SyncFromBundle(ctx context.Context) (*SyncResult, error) {
	now := time.Now()

	heroes := make([]domain.Hero, len(s.bundle.Heroes))
	for i, h := range s.bundle.Heroes {
		h.LastSyncedAt = now
		heroes[i] = h
	}
	events := make([]domain.GameEvent, len(s.bundle.Events))
	for i, e := range s.bundle.Events {
		e.LastSyncedAt = now
		events[i] = e
	}

	if err := s.heroRepo.UpsertMany(ctx, heroes); err != nil {
		return nil, fmt.Errorf("failed to upsert heroes: %w", err)
	}
	if err := s.eventRepo.UpsertMany(ctx, events); err != nil {
		return nil, fmt.Errorf("failed to upsert events: %w", err)
	}
	if err := s.equipmentRepo.UpsertAll(ctx, s.bundle.Equipment()); err != nil {
		return nil, fmt.Errorf("failed to upsert equipment: %w", err)
	}

	if s.store != nil {
		if err := s.store.DeletePrefix(ctx, cache.CatalogPrefix(s.bundle.Version)); err != nil {
			log.Printf("WARN [catalog.SyncFromBundle] cache invalidation failed: %v", err)
		}
	}

	s.seedMu.Lock()
	s.seeded = true
	s.seedMu.Unlock()

	return &SyncResult{
		Version: s.bundle.Version,
		Heroes:  len(heroes),
		Events:  len(events),
		Pets:    len(s.bundle.Pets),
		Relics:  len(s.bundle.Relics),
		Skins:   len(s.bundle.Skins),
	}, nil
}

// ensureSeeded syncs the bundle once when the hero table is empty
func (s *CatalogService) ensureSeeded(ctx context.Context) error {
	s.seedMu.Lock()
	if s.seeded {
		s.seedMu.Unlock()
		return nil
	}
	s.seedMu.Unlock()

	heroes, err := s.heroRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(heroes) > 0 {
		s.seedMu.Lock()
		s.seeded = true
		s.seedMu.Unlock()
		return nil
	}

	log.Printf("Catalog tables empty, seeding version %s", s.bundle.Version)
	_, err = s.SyncFromBundle(ctx)
	return err
}

// readThrough returns the cached value of kind, or loads and caches it
func readThrough[T any](ctx context.Context, s *CatalogService, kind string, load func(context.Context) (T, error)) (T, error) {
	key := cache.CatalogKey(s.bundle.Version, kind)

	var cached T
	if s.store != nil {
		found, err := s.store.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("WARN [catalog.%s] cache read failed: %v", kind, err)
		} else if found {
			return cached, nil
		}
	}

	if err := s.ensureSeeded(ctx); err != nil {
		var zero T
		return zero, err
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if s.store != nil {
		if err := s.store.SetJSON(ctx, key, value, s.ttl); err != nil {
			log.Printf("WARN [catalog.%s] cache write failed: %v", kind, err)
		}
	}
	return value, nil
}

func (s *CatalogService) GetHeroes(ctx context.Context) ([]domain.Hero, error) {
	return readThrough(ctx, s, cacheKindHeroes, s.heroRepo.GetAll)
}

func (s *CatalogService) GetEvents(ctx context.Context) ([]domain.GameEvent, error) {
	return readThrough(ctx, s, cacheKindEvents, s.eventRepo.GetAll)
}

func (s *CatalogService) GetEquipment(ctx context.Context) (domain.Equipment, error) {
	return readThrough(ctx, s, cacheKindEquipment, s.equipmentRepo.GetAll)
}

func (s *CatalogService) GetHero(ctx context.Context, id string) (*domain.Hero, error) {
	heroes, err := s.GetHeroes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range heroes {
		if heroes[i].ID == id {
			return &heroes[i], nil
		}
	}
	return nil, ErrHeroNotFound
}

func (s *CatalogService) GetEvent(ctx context.Context, id string) (*domain.GameEvent, error) {
	events, err := s.GetEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, ErrEventNotFound
}
