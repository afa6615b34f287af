package repository

import (
	"context"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"gorm.io/gorm"
)

// ReadingRepository is the reading source: the trainer and risk engine
// consume readings ordered ascending, the forecaster consumes the
// most-recent-N variant.
type ReadingRepository interface {
	Create(ctx context.Context, reading *domain.GlucoseReading) error
	// ExistsAt reports whether a reading already exists for the user at
	// the exact timestamp (sync dedupe).
	ExistsAt(ctx context.Context, userID int64, timestamp time.Time) (bool, error)
	// ListAll returns readings ordered by timestamp ascending, across
	// all users or narrowed to one when userID is non-nil.
	ListAll(ctx context.Context, userID *int64) ([]domain.GlucoseReading, error)
	// ListRecent returns up to limit readings for the user, newest first.
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.GlucoseReading, error)
	// ListSince returns the user's readings at or after since, ascending.
	ListSince(ctx context.Context, userID int64, since time.Time) ([]domain.GlucoseReading, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
}

type readingRepository struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &readingRepository{db: db}
}

func (r *readingRepository) Create(ctx context.Context, reading *domain.GlucoseReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

func (r *readingRepository) ExistsAt(ctx context.Context, userID int64, timestamp time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.GlucoseReading{}).
		Where("user_id = ? AND timestamp = ?", userID, timestamp).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *readingRepository) ListAll(ctx context.Context, userID *int64) ([]domain.GlucoseReading, error) {
	query := r.db.WithContext(ctx).Order("timestamp ASC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var readings []domain.GlucoseReading
	if err := query.Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.GlucoseReading, error) {
	var readings []domain.GlucoseReading
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepository) ListSince(ctx context.Context, userID int64, since time.Time) ([]domain.GlucoseReading, error) {
	var readings []domain.GlucoseReading
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Order("timestamp ASC").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *readingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.GlucoseReading{}).Count(&count).Error
	return count, err
}

func (r *readingRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.GlucoseReading{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *readingRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.GlucoseReading{}).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
