package postgres

import (
	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the repositories use
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Hero{},
		&domain.Pet{},
		&domain.Relic{},
		&domain.Skin{},
		&domain.GameEvent{},
		&domain.Profile{},
		&domain.SnapshotRecord{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:      NewUserRepository(db),
		Session:   NewSessionRepository(db),
		Hero:      NewHeroRepository(db),
		Event:     NewEventRepository(db),
		Equipment: NewEquipmentRepository(db),
		Profile:   NewProfileRepository(db),
		Snapshot:  NewSnapshotRepository(db),
	}
}
