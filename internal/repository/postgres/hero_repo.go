package postgres

import (
	"context"

	"github.com/dom/hero-companion/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type heroRepository struct {
	db *gorm.DB
}

func NewHeroRepository(db *gorm.DB) *heroRepository {
	return &heroRepository{db: db}
}

func (r *heroRepository) UpsertMany(ctx context.Context, heroes []domain.Hero) error {
	if len(heroes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&heroes).Error
}

func (r *heroRepository) GetAll(ctx context.Context) ([]domain.Hero, error) {
	var heroes []domain.Hero
	err := r.db.WithContext(ctx).Order("name ASC").Find(&heroes).Error
	if err != nil {
		return nil, err
	}
	return heroes, nil
}

func (r *heroRepository) GetByID(ctx context.Context, id string) (*domain.Hero, error) {
	var hero domain.Hero
	err := r.db.WithContext(ctx).First(&hero, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hero, nil
}
