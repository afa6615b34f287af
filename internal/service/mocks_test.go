package service

import (
	"context"
	"sort"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/google/uuid"
)

// MockReadingRepository is a mock implementation of ReadingRepository
type MockReadingRepository struct {
	readings []domain.GlucoseReading
	err      error
}

func NewMockReadingRepository() *MockReadingRepository {
	return &MockReadingRepository{}
}

func (m *MockReadingRepository) SetError(err error) {
	m.err = err
}

func (m *MockReadingRepository) Add(readings ...domain.GlucoseReading) {
	m.readings = append(m.readings, readings...)
}

func (m *MockReadingRepository) Create(ctx context.Context, reading *domain.GlucoseReading) error {
	if m.err != nil {
		return m.err
	}
	reading.ID = int64(len(m.readings) + 1)
	reading.CreatedAt = time.Now()
	m.readings = append(m.readings, *reading)
	return nil
}

func (m *MockReadingRepository) ExistsAt(ctx context.Context, userID int64, timestamp time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, r := range m.readings {
		if r.UserID == userID && r.Timestamp.Equal(timestamp) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockReadingRepository) ListAll(ctx context.Context, userID *int64) ([]domain.GlucoseReading, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.GlucoseReading
	for _, r := range m.readings {
		if userID == nil || r.UserID == *userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

func (m *MockReadingRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.GlucoseReading, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.GlucoseReading
	for _, r := range m.readings {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockReadingRepository) ListSince(ctx context.Context, userID int64, since time.Time) ([]domain.GlucoseReading, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.GlucoseReading
	for _, r := range m.readings {
		if r.UserID == userID && !r.Timestamp.Before(since) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

func (m *MockReadingRepository) Count(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.readings)), nil
}

func (m *MockReadingRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var count int64
	for _, r := range m.readings {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockReadingRepository) CountUsers(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	users := make(map[int64]struct{})
	for _, r := range m.readings {
		users[r.UserID] = struct{}{}
	}
	return int64(len(users)), nil
}

// MockPredictionRepository is a mock implementation of PredictionRepository
type MockPredictionRepository struct {
	created []domain.Prediction
	err     error
}

func NewMockPredictionRepository() *MockPredictionRepository {
	return &MockPredictionRepository{}
}

func (m *MockPredictionRepository) SetError(err error) {
	m.err = err
}

func (m *MockPredictionRepository) Create(ctx context.Context, prediction *domain.Prediction) error {
	if m.err != nil {
		return m.err
	}
	if prediction.ID == uuid.Nil {
		prediction.ID = uuid.New()
	}
	prediction.CreatedAt = time.Now()
	m.created = append(m.created, *prediction)
	return nil
}

func (m *MockPredictionRepository) List(ctx context.Context, userID int64, filter domain.PredictionFilter) ([]domain.Prediction, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Prediction
	for _, p := range m.created {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockPredictionRepository) Count(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.created)), nil
}

// MockSyncLogRepository is a mock implementation of SyncLogRepository
type MockSyncLogRepository struct {
	logs map[uuid.UUID]*domain.SyncLog
	err  error
}

func NewMockSyncLogRepository() *MockSyncLogRepository {
	return &MockSyncLogRepository{logs: make(map[uuid.UUID]*domain.SyncLog)}
}

func (m *MockSyncLogRepository) SetError(err error) {
	m.err = err
}

func (m *MockSyncLogRepository) Create(ctx context.Context, syncLog *domain.SyncLog) error {
	if m.err != nil {
		return m.err
	}
	if syncLog.ID == uuid.Nil {
		syncLog.ID = uuid.New()
	}
	syncLog.StartedAt = time.Now()
	stored := *syncLog
	m.logs[syncLog.ID] = &stored
	return nil
}

func (m *MockSyncLogRepository) Update(ctx context.Context, syncLog *domain.SyncLog) error {
	if m.err != nil {
		return m.err
	}
	stored := *syncLog
	m.logs[syncLog.ID] = &stored
	return nil
}

func (m *MockSyncLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.SyncLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.SyncLog
	for _, l := range m.logs {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockSyncLogRepository) Count(ctx context.Context) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.logs)), nil
}
