package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/dom/hero-companion/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	maxHeroStars       = 15
	maxHeroLevel       = 200
	maxUpdateAttempts  = 3
	defaultSnapshotCap = 100
)

type ProfileService struct {
	profileRepo  repository.ProfileRepository
	snapshotRepo repository.SnapshotRepository
	catalog      repository.CatalogProvider
	clock        engine.Clock
}

func NewProfileService(
	profileRepo repository.ProfileRepository,
	snapshotRepo repository.SnapshotRepository,
	catalog repository.CatalogProvider,
	clock engine.Clock,
) *ProfileService {
	return &ProfileService{
		profileRepo:  profileRepo,
		snapshotRepo: snapshotRepo,
		catalog:      catalog,
		clock:        clock,
	}
}

// GetProfile returns the user's profile, creating an empty one on first access
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = domain.NewProfile(userID)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// Lost a race with a concurrent first access
		if existing, getErr := s.profileRepo.GetByUserID(ctx, userID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return profile, nil
}

// GetUserData returns a copy of the stored UserData
func (s *ProfileService) GetUserData(ctx context.Context, userID uuid.UUID) (*domain.UserData, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	data := profile.Data.Data()
	return &data, nil
}

// SaveUserData replaces the stored UserData when expectedVersion matches.
// Roster entries are resynced against the catalog and their power recomputed.
func (s *ProfileService) SaveUserData(ctx context.Context, userID uuid.UUID, expectedVersion int, data domain.UserData) (*domain.Profile, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.Version != expectedVersion {
		return nil, domain.ErrVersionConflict
	}

	if err := s.resyncRoster(ctx, &data); err != nil {
		return nil, err
	}
	if data.Roster == nil {
		data.Roster = []domain.OwnedHero{}
	}
	if data.Queues == nil {
		data.Queues = []domain.Queue{}
	}

	profile.Data = datatypes.NewJSONType(data)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RecruitHero adds a catalog hero to the roster at level 1
func (s *ProfileService) RecruitHero(ctx context.Context, userID uuid.UUID, heroID string) (*domain.Profile, error) {
	hero, err := s.findCatalogHero(ctx, heroID)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, userID, func(data *domain.UserData) error {
		if _, owned := data.FindHero(heroID); owned {
			return domain.ErrHeroAlreadyOwned
		}
		recruit := domain.NewOwnedHero(*hero)
		recruit.Power = engine.Power(recruit)
		data.Roster = append(data.Roster, recruit)
		return nil
	})
}

// UnrecruitHero removes a hero from the roster and clears its formation slots
func (s *ProfileService) UnrecruitHero(ctx context.Context, userID uuid.UUID, heroID string) (*domain.Profile, error) {
	return s.update(ctx, userID, func(data *domain.UserData) error {
		kept := data.Roster[:0]
		found := false
		for _, h := range data.Roster {
			if h.ID == heroID {
				found = true
				continue
			}
			kept = append(kept, h)
		}
		if !found {
			return domain.ErrHeroNotOwned
		}
		data.Roster = kept

		for i := range data.Queues {
			for j, id := range data.Queues[i].HeroIDs {
				if id == heroID {
					data.Queues[i].HeroIDs[j] = ""
				}
			}
		}
		return nil
	})
}

// HeroProgressInput holds the optional progress fields of a hero update
type HeroProgressInput struct {
	Level     *int `json:"level"`
	Stars     *int `json:"stars"`
	Awakening *int `json:"awakening"`
}

// UpdateHeroProgress changes level, stars or awakening of an owned hero
func (s *ProfileService) UpdateHeroProgress(ctx context.Context, userID uuid.UUID, heroID string, input HeroProgressInput) (*domain.Profile, error) {
	if input.Level != nil && (*input.Level < 1 || *input.Level > maxHeroLevel) {
		return nil, domain.ErrInvalidLevel
	}
	if input.Stars != nil && (*input.Stars < 0 || *input.Stars > maxHeroStars) {
		return nil, domain.ErrInvalidStars
	}

	hero, err := s.findCatalogHero(ctx, heroID)
	if err != nil && !errors.Is(err, domain.ErrHeroNotInCatalog) {
		return nil, err
	}

	return s.update(ctx, userID, func(data *domain.UserData) error {
		owned, ok := data.FindHero(heroID)
		if !ok {
			return domain.ErrHeroNotOwned
		}
		if hero != nil {
			owned.SyncCatalog(*hero)
		}
		if input.Level != nil {
			owned.Level = *input.Level
		}
		if input.Stars != nil {
			owned.Stars = *input.Stars
		}
		if input.Awakening != nil && *input.Awakening >= 0 {
			owned.Awakening = *input.Awakening
		}
		owned.Power = engine.Power(*owned)
		return nil
	})
}

// RecordSnapshot stores the current total influence as a progress point
func (s *ProfileService) RecordSnapshot(ctx context.Context, userID uuid.UUID, note string) (*domain.SnapshotRecord, error) {
	data, err := s.GetUserData(ctx, userID)
	if err != nil {
		return nil, err
	}
	equipment, err := s.catalog.GetEquipment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}

	calc := engine.NewInfluenceCalculator(engine.NewEquipmentCatalog(equipment.Pets, equipment.Relics, equipment.Skins))
	record := &domain.SnapshotRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Value:      calc.TotalInfluence(data),
		Note:       note,
		RecordedAt: s.clock.Now().UTC(),
	}
	if err := s.snapshotRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListSnapshots returns up to limit recent snapshots, oldest first
func (s *ProfileService) ListSnapshots(ctx context.Context, userID uuid.UUID, limit int) ([]domain.SnapshotRecord, error) {
	if limit <= 0 {
		limit = defaultSnapshotCap
	}
	return s.snapshotRepo.ListByUserID(ctx, userID, limit)
}

// History returns recorded snapshots, falling back to the imported progress log
func (s *ProfileService) History(ctx context.Context, userID uuid.UUID, data *domain.UserData) ([]domain.ProgressSnapshot, error) {
	records, err := s.ListSnapshots(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return data.ProgressLog, nil
	}
	snapshots := make([]domain.ProgressSnapshot, len(records))
	for i := range records {
		snapshots[i] = records[i].Snapshot()
	}
	return snapshots, nil
}

// update applies fn to the latest UserData and saves it, retrying on version conflicts
func (s *ProfileService) update(ctx context.Context, userID uuid.UUID, fn func(*domain.UserData) error) (*domain.Profile, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		profile, err := s.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}

		data := profile.Data.Data()
		if err := fn(&data); err != nil {
			return nil, err
		}

		profile.Data = datatypes.NewJSONType(data)
		err = s.profileRepo.Save(ctx, profile)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *ProfileService) findCatalogHero(ctx context.Context, heroID string) (*domain.Hero, error) {
	heroes, err := s.catalog.GetHeroes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range heroes {
		if heroes[i].ID == heroID {
			return &heroes[i], nil
		}
	}
	return nil, domain.ErrHeroNotInCatalog
}

// resyncRoster copies catalog fields onto owned heroes and refreshes cached power.
// Heroes missing from the catalog keep their uploaded fields.
func (s *ProfileService) resyncRoster(ctx context.Context, data *domain.UserData) error {
	if len(data.Roster) == 0 {
		return nil
	}
	heroes, err := s.catalog.GetHeroes(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]domain.Hero, len(heroes))
	for _, h := range heroes {
		byID[h.ID] = h
	}

	for i := range data.Roster {
		if hero, ok := byID[data.Roster[i].ID]; ok {
			data.Roster[i].SyncCatalog(hero)
		}
		data.Roster[i].Power = engine.Power(data.Roster[i])
	}
	return nil
}
