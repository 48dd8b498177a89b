package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/hero-companion/internal/cache"
	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/repository/postgres"
	"github.com/dom/hero-companion/internal/service"
	"github.com/dom/hero-companion/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-process cache.Store
type memoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string][]byte)}
}

func (m *memoryStore) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return false, errors.New("connection refused")
	}
	raw, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memoryStore) DeletePrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func (m *memoryStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

func (m *memoryStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func newCatalogService(t *testing.T, testDB *testutil.TestDB, store cache.Store) *service.CatalogService {
	t.Helper()

	repos := postgres.NewRepositories(testDB.DB)
	return service.NewCatalogService(repos.Hero, repos.Event, repos.Equipment, testutil.LoadBundle(t), store, time.Minute)
}

func TestCatalogService_SeedsOnFirstRead(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	catalogService := newCatalogService(t, testDB, nil)
	ctx := context.Background()

	heroes, err := catalogService.GetHeroes(ctx)
	require.NoError(t, err)
	assert.Len(t, heroes, 12)

	var count int64
	require.NoError(t, testDB.DB.Model(&domain.Hero{}).Count(&count).Error)
	assert.Equal(t, int64(12), count)

	equipment, err := catalogService.GetEquipment(ctx)
	require.NoError(t, err)
	assert.Len(t, equipment.Pets, 3)
	assert.Len(t, equipment.Relics, 4)
	assert.Len(t, equipment.Skins, 4)
}

func TestCatalogService_SyncFromBundle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	store := newMemoryStore()
	catalogService := newCatalogService(t, testDB, store)
	ctx := context.Background()

	_, err := catalogService.GetEvents(ctx)
	require.NoError(t, err)
	require.True(t, store.has(cache.CatalogKey(catalogService.Version(), "events")))

	result, err := catalogService.SyncFromBundle(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalogService.Version(), result.Version)
	assert.Equal(t, 12, result.Heroes)
	assert.Equal(t, 6, result.Events)
	assert.Equal(t, 3, result.Pets)
	assert.Equal(t, 4, result.Relics)
	assert.Equal(t, 4, result.Skins)

	assert.Zero(t, store.size(), "sync drops cached catalog entries")

	// A second sync upserts in place
	_, err = catalogService.SyncFromBundle(ctx)
	require.NoError(t, err)
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.GameEvent{}).Count(&count).Error)
	assert.Equal(t, int64(6), count)
}

func TestCatalogService_ServesFromCache(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	store := newMemoryStore()
	catalogService := newCatalogService(t, testDB, store)
	ctx := context.Background()

	first, err := catalogService.GetHeroes(ctx)
	require.NoError(t, err)

	require.NoError(t, testDB.DB.Exec("TRUNCATE TABLE heroes CASCADE").Error)

	cached, err := catalogService.GetHeroes(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(cached))
}

func TestCatalogService_CacheFailureFallsBackToDatabase(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	store := newMemoryStore()
	store.failGet = true
	catalogService := newCatalogService(t, testDB, store)

	heroes, err := catalogService.GetHeroes(context.Background())
	require.NoError(t, err)
	assert.Len(t, heroes, 12)
}

func TestCatalogService_Lookups(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	catalogService := newCatalogService(t, testDB, nil)
	ctx := context.Background()

	hero, err := catalogService.GetHero(ctx, "sylvara")
	require.NoError(t, err)
	assert.Equal(t, domain.FactionNature, hero.Faction)
	assert.Equal(t, domain.RarityMythic, hero.Rarity)

	_, err = catalogService.GetHero(ctx, "nobody")
	assert.ErrorIs(t, err, service.ErrHeroNotFound)

	event, err := catalogService.GetEvent(ctx, "arms-race")
	require.NoError(t, err)
	assert.Len(t, event.Phases, 6)

	_, err = catalogService.GetEvent(ctx, "nothing")
	assert.ErrorIs(t, err, service.ErrEventNotFound)
}
