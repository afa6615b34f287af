package repository

import (
	"context"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/pkg/pagination"
	"gorm.io/gorm"
)

// PredictionRepository is the prediction sink: forecast points are
// recorded here for accuracy tracking and history listings.
type PredictionRepository interface {
	Create(ctx context.Context, prediction *domain.Prediction) error
	List(ctx context.Context, userID int64, filter domain.PredictionFilter) ([]domain.Prediction, error)
	Count(ctx context.Context) (int64, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *domain.Prediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

func (r *predictionRepository) List(ctx context.Context, userID int64, filter domain.PredictionFilter) ([]domain.Prediction, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			query = query.Where(
				"(created_at < ?) OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var predictions []domain.Prediction
	if err := query.Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Prediction{}).Count(&count).Error
	return count, err
}
