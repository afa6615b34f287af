package handler

import (
	"net/http"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/ml"
	"github.com/DouzZ4/checkinc-ml-service/internal/repository"
	"github.com/DouzZ4/checkinc-ml-service/pkg/problem"
	"gorm.io/gorm"
)

// ServiceVersion is reported on the health and stats endpoints.
const ServiceVersion = "1.0.0"

// HealthResponse is the health check body.
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Database    string    `json:"database"`
	ModelLoaded bool      `json:"model_loaded"`
	Timestamp   time.Time `json:"timestamp"`
}

// StatsResponse summarizes stored data volumes.
type StatsResponse struct {
	TotalGlucoseReadings int64  `json:"total_glucose_readings"`
	TotalPredictionsMade int64  `json:"total_predictions_made"`
	UniqueUsers          int64  `json:"unique_users"`
	SyncOperations       int64  `json:"sync_operations"`
	ModelVersion         string `json:"model_version"`
}

type SystemHandler struct {
	db             *gorm.DB
	store          *ml.Store
	readingRepo    repository.ReadingRepository
	predictionRepo repository.PredictionRepository
	syncLogRepo    repository.SyncLogRepository
}

func NewSystemHandler(
	db *gorm.DB,
	store *ml.Store,
	readingRepo repository.ReadingRepository,
	predictionRepo repository.PredictionRepository,
	syncLogRepo repository.SyncLogRepository,
) *SystemHandler {
	return &SystemHandler{
		db:             db,
		store:          store,
		readingRepo:    readingRepo,
		predictionRepo: predictionRepo,
		syncLogRepo:    syncLogRepo,
	}
}

// Health handles GET /health
// @Summary Health check
// @Description Verifies the service, database connection and model state.
// @Tags health
// @Produce json
// @Success 200 {object} handler.HealthResponse
// @Router /health [get]
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.PingContext(r.Context()); err != nil {
		dbStatus = "error: " + err.Error()
	}

	status := "healthy"
	if dbStatus != "connected" {
		status = "unhealthy"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      status,
		Version:     ServiceVersion,
		Database:    dbStatus,
		ModelLoaded: h.store.Current().Trained(),
		Timestamp:   time.Now().UTC(),
	})
}

// Stats handles GET /stats
// @Summary Service statistics
// @Description Totals for readings, predictions, users and sync runs.
// @Tags statistics
// @Produce json
// @Success 200 {object} handler.StatsResponse
// @Failure 500 {object} problem.Problem "Server error"
// @Router /stats [get]
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	readings, err := h.readingRepo.Count(ctx)
	if err != nil {
		problem.InternalError("Failed to compute statistics").Write(w)
		return
	}
	predictions, err := h.predictionRepo.Count(ctx)
	if err != nil {
		problem.InternalError("Failed to compute statistics").Write(w)
		return
	}
	users, err := h.readingRepo.CountUsers(ctx)
	if err != nil {
		problem.InternalError("Failed to compute statistics").Write(w)
		return
	}
	syncs, err := h.syncLogRepo.Count(ctx)
	if err != nil {
		problem.InternalError("Failed to compute statistics").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		TotalGlucoseReadings: readings,
		TotalPredictionsMade: predictions,
		UniqueUsers:          users,
		SyncOperations:       syncs,
		ModelVersion:         h.store.Current().Version,
	})
}
