package handler

import (
	"context"
	"errors"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/google/uuid"
)

// Mock services shared by the handler tests. Each mock returns its
// configured result or error verbatim.

type mockForecastService struct {
	result *domain.ForecastResult
	err    error
}

func (m *mockForecastService) PredictNextHours(ctx context.Context, userID int64, hoursAhead int) (*domain.ForecastResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockRiskService struct {
	assessment      *domain.RiskAssessment
	recommendations []string
	err             error
}

func (m *mockRiskService) Assess(ctx context.Context, userID int64) (*domain.RiskAssessment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assessment, nil
}

func (m *mockRiskService) Recommendations(ctx context.Context, userID int64) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.recommendations, nil
}

type mockSyncService struct {
	response *domain.SyncResponse
	status   *domain.SyncStatusResponse
	err      error

	lastSyncType string
	lastBatch    []domain.CreateReadingRequest
}

func (m *mockSyncService) SyncReading(ctx context.Context, req *domain.CreateReadingRequest) (*domain.SyncResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockSyncService) SyncBatch(ctx context.Context, syncType string, readings []domain.CreateReadingRequest) (*domain.SyncResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastSyncType = syncType
	m.lastBatch = readings
	return m.response, nil
}

func (m *mockSyncService) Status(ctx context.Context) (*domain.SyncStatusResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

type mockTrainingService struct {
	result *domain.TrainingResult
	err    error

	lastUserID *int64
	calls      int
}

func (m *mockTrainingService) Train(ctx context.Context, userID *int64) (*domain.TrainingResult, error) {
	m.calls++
	m.lastUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// Repository mocks. The handlers touch only a few methods; the rest
// return zero values to satisfy the interfaces.

type mockReadingRepo struct {
	countByUser int64
	err         error
}

func (m *mockReadingRepo) Create(ctx context.Context, reading *domain.GlucoseReading) error {
	return m.err
}

func (m *mockReadingRepo) ExistsAt(ctx context.Context, userID int64, timestamp time.Time) (bool, error) {
	return false, m.err
}

func (m *mockReadingRepo) ListAll(ctx context.Context, userID *int64) ([]domain.GlucoseReading, error) {
	return nil, m.err
}

func (m *mockReadingRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.GlucoseReading, error) {
	return nil, m.err
}

func (m *mockReadingRepo) ListSince(ctx context.Context, userID int64, since time.Time) ([]domain.GlucoseReading, error) {
	return nil, m.err
}

func (m *mockReadingRepo) Count(ctx context.Context) (int64, error) {
	return 0, m.err
}

func (m *mockReadingRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.countByUser, nil
}

func (m *mockReadingRepo) CountUsers(ctx context.Context) (int64, error) {
	return 0, m.err
}

type mockPredictionRepo struct {
	predictions []domain.Prediction
	err         error

	lastFilter domain.PredictionFilter
}

func (m *mockPredictionRepo) Create(ctx context.Context, prediction *domain.Prediction) error {
	return m.err
}

func (m *mockPredictionRepo) List(ctx context.Context, userID int64, filter domain.PredictionFilter) ([]domain.Prediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFilter = filter
	return m.predictions, nil
}

func (m *mockPredictionRepo) Count(ctx context.Context) (int64, error) {
	return 0, m.err
}

func storedPrediction(userID int64, level float64, createdAt time.Time) domain.Prediction {
	return domain.Prediction{
		ID:                     uuid.New(),
		UserID:                 userID,
		PredictedLevel:         level,
		PredictionForTimestamp: createdAt.Add(time.Hour),
		ConfidenceScore:        0.95,
		ModelVersion:           "1.0.0",
		CreatedAt:              createdAt,
	}
}

var errBoom = errors.New("boom")
