package postgres

import (
	"context"

	"github.com/dom/hero-companion/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *eventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) UpsertMany(ctx context.Context, events []domain.GameEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&events).Error
}

func (r *eventRepository) GetAll(ctx context.Context) ([]domain.GameEvent, error) {
	var events []domain.GameEvent
	err := r.db.WithContext(ctx).Order("id ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.GameEvent, error) {
	var event domain.GameEvent
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}
