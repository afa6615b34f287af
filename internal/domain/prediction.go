package domain

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is a stored forecast point, kept for accuracy tracking.
type Prediction struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                 int64     `gorm:"not null;index:idx_predictions_user_for" json:"user_id"`
	PredictedLevel         float64   `gorm:"not null" json:"predicted_level"`
	PredictionForTimestamp time.Time `gorm:"not null;index:idx_predictions_user_for" json:"prediction_for_timestamp"`
	ConfidenceScore        float64   `json:"confidence_score"`
	ModelVersion           string    `gorm:"type:varchar(50)" json:"model_version"`
	// Filled in later once the real reading arrives
	ActualLevel *float64  `json:"actual_level,omitempty"`
	ErrorMargin *float64  `json:"error_margin,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Prediction) TableName() string {
	return "predictions"
}

// ForecastPoint is a single in-memory prediction for one future hour.
type ForecastPoint struct {
	// Hour the prediction is for
	Timestamp time.Time `json:"timestamp" example:"2024-03-01T09:30:00Z"`
	// Predicted glucose level in mg/dL, rounded to 2 decimals
	PredictedLevel float64 `json:"predicted_level" example:"121.37"`
	// Heuristic confidence in [0.5, 1.0], decaying with the horizon
	ConfidenceScore float64 `json:"confidence_score" example:"0.95"`
}

// ForecastResult is what the forecast service hands back to callers.
type ForecastResult struct {
	Points       []ForecastPoint
	ModelVersion string
	// Message is set when the forecast succeeded but recording the
	// points in the database did not. The points are still valid.
	Message string
}

// PredictRequest is the payload for requesting a forecast.
// @Description Request a glucose forecast for the next N hours.
type PredictRequest struct {
	// User ID to predict for
	UserID int64 `json:"user_id" validate:"required,gt=0" example:"42"`
	// How many hours ahead to predict (1-24)
	HoursAhead int `json:"hours_ahead" validate:"required,min=1,max=24" example:"6"`
}

// PredictResponse carries the forecast points back to the caller.
type PredictResponse struct {
	UserID       int64           `json:"user_id"`
	Predictions  []ForecastPoint `json:"predictions"`
	ModelVersion string          `json:"model_version"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Message      string          `json:"message,omitempty"`
}

// PredictionHistoryItem is one stored prediction in the history listing.
type PredictionHistoryItem struct {
	ID              uuid.UUID `json:"id"`
	PredictedLevel  float64   `json:"predicted_level"`
	PredictionFor   time.Time `json:"prediction_for"`
	ConfidenceScore float64   `json:"confidence"`
	ActualLevel     *float64  `json:"actual_level,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// PredictionHistoryResponse is a cursor-paginated page of stored predictions.
type PredictionHistoryResponse struct {
	UserID      int64                   `json:"user_id"`
	Predictions []PredictionHistoryItem `json:"predictions"`
	Pagination  PaginationResponse      `json:"pagination"`
}

// PaginationResponse contains cursor pagination metadata.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more"`
}

// PredictionFilter contains filter parameters for listing stored predictions.
type PredictionFilter struct {
	Limit  int
	Cursor string
}

func (p *Prediction) ToHistoryItem() PredictionHistoryItem {
	return PredictionHistoryItem{
		ID:              p.ID,
		PredictedLevel:  p.PredictedLevel,
		PredictionFor:   p.PredictionForTimestamp,
		ConfidenceScore: p.ConfidenceScore,
		ActualLevel:     p.ActualLevel,
		CreatedAt:       p.CreatedAt,
	}
}
