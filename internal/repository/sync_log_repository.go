package repository

import (
	"context"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"gorm.io/gorm"
)

type SyncLogRepository interface {
	Create(ctx context.Context, syncLog *domain.SyncLog) error
	Update(ctx context.Context, syncLog *domain.SyncLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.SyncLog, error)
	Count(ctx context.Context) (int64, error)
}

type syncLogRepository struct {
	db *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db: db}
}

func (r *syncLogRepository) Create(ctx context.Context, syncLog *domain.SyncLog) error {
	return r.db.WithContext(ctx).Create(syncLog).Error
}

func (r *syncLogRepository) Update(ctx context.Context, syncLog *domain.SyncLog) error {
	return r.db.WithContext(ctx).Save(syncLog).Error
}

func (r *syncLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.SyncLog, error) {
	var logs []domain.SyncLog
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *syncLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.SyncLog{}).Count(&count).Error
	return count, err
}
