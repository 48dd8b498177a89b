package postgres

import (
	"context"

	"github.com/dom/hero-companion/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type equipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *equipmentRepository {
	return &equipmentRepository{db: db}
}

// UpsertAll writes pets, relics and skins in one transaction
func (r *equipmentRepository) UpsertAll(ctx context.Context, eq domain.Equipment) error {
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(eq.Pets) > 0 {
			if err := tx.Clauses(upsert).Create(&eq.Pets).Error; err != nil {
				return err
			}
		}
		if len(eq.Relics) > 0 {
			if err := tx.Clauses(upsert).Create(&eq.Relics).Error; err != nil {
				return err
			}
		}
		if len(eq.Skins) > 0 {
			if err := tx.Clauses(upsert).Create(&eq.Skins).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *equipmentRepository) GetAll(ctx context.Context) (domain.Equipment, error) {
	var eq domain.Equipment
	db := r.db.WithContext(ctx)

	if err := db.Order("id ASC").Find(&eq.Pets).Error; err != nil {
		return domain.Equipment{}, err
	}
	if err := db.Order("id ASC").Find(&eq.Relics).Error; err != nil {
		return domain.Equipment{}, err
	}
	if err := db.Order("id ASC").Find(&eq.Skins).Error; err != nil {
		return domain.Equipment{}, err
	}
	return eq, nil
}
