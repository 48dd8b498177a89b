package postgres

import (
	"context"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *snapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(ctx context.Context, record *domain.SnapshotRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByUserID returns the most recent records in chronological order
func (r *snapshotRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]domain.SnapshotRecord, error) {
	var records []domain.SnapshotRecord
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
