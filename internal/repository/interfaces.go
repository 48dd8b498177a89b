package repository

import (
	"context"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	RecordLogin(ctx context.Context, user *domain.User) error
	// Delete removes the user and everything they own.
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	// Replace stores session and drops any earlier session of the same user.
	Replace(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type HeroRepository interface {
	UpsertMany(ctx context.Context, heroes []domain.Hero) error
	GetAll(ctx context.Context) ([]domain.Hero, error)
	GetByID(ctx context.Context, id string) (*domain.Hero, error)
}

type EventRepository interface {
	UpsertMany(ctx context.Context, events []domain.GameEvent) error
	GetAll(ctx context.Context) ([]domain.GameEvent, error)
	GetByID(ctx context.Context, id string) (*domain.GameEvent, error)
}

type EquipmentRepository interface {
	UpsertAll(ctx context.Context, eq domain.Equipment) error
	GetAll(ctx context.Context) (domain.Equipment, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	// Save writes profile if the stored version still equals profile.Version,
	// then increments profile.Version. Returns domain.ErrVersionConflict otherwise.
	Save(ctx context.Context, profile *domain.Profile) error
}

type SnapshotRepository interface {
	Create(ctx context.Context, record *domain.SnapshotRecord) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.SnapshotRecord, error)
}

// CatalogProvider supplies the static game catalog to the advisor
type CatalogProvider interface {
	GetHeroes(ctx context.Context) ([]domain.Hero, error)
	GetEvents(ctx context.Context) ([]domain.GameEvent, error)
	GetEquipment(ctx context.Context) (domain.Equipment, error)
}

type Repositories struct {
	User      UserRepository
	Session   SessionRepository
	Hero      HeroRepository
	Event     EventRepository
	Equipment EquipmentRepository
	Profile   ProfileRepository
	Snapshot  SnapshotRepository
}
