package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/DouzZ4/checkinc-ml-service/internal/api/validation"
	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/internal/service"
	"github.com/DouzZ4/checkinc-ml-service/pkg/problem"
)

type SyncHandler struct {
	syncService     service.SyncService
	trainingService service.TrainingService
}

func NewSyncHandler(syncService service.SyncService, trainingService service.TrainingService) *SyncHandler {
	return &SyncHandler{
		syncService:     syncService,
		trainingService: trainingService,
	}
}

// SyncReading handles POST /api/v1/sync/reading
// @Summary Sync a single reading
// @Description Store one glucose reading from the Java application. Duplicate (user, timestamp) pairs report status "duplicate".
// @Tags synchronization
// @Accept json
// @Produce json
// @Param request body domain.CreateReadingRequest true "Glucose reading"
// @Success 200 {object} domain.SyncResponse
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sync/reading [post]
func (h *SyncHandler) SyncReading(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	response, err := h.syncService.SyncReading(r.Context(), &req)
	if err != nil {
		problem.InternalError("Sync failed").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// SyncInitial handles POST /api/v1/sync/initial
// @Summary Initial bulk synchronization
// @Description Upload all historical readings once when setting up the service.
// @Tags synchronization
// @Accept json
// @Produce json
// @Param request body domain.SyncBatchRequest true "Historical readings (1-1000)"
// @Success 200 {object} domain.SyncResponse
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sync/initial [post]
func (h *SyncHandler) SyncInitial(w http.ResponseWriter, r *http.Request) {
	h.syncBatch(w, r, domain.SyncTypeInitial)
}

// SyncBatch handles POST /api/v1/sync/batch
// @Summary Batch synchronization
// @Description Store multiple readings at once for periodic catch-up syncs.
// @Tags synchronization
// @Accept json
// @Produce json
// @Param request body domain.SyncBatchRequest true "Readings (1-1000)"
// @Success 200 {object} domain.SyncResponse
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sync/batch [post]
func (h *SyncHandler) SyncBatch(w http.ResponseWriter, r *http.Request) {
	h.syncBatch(w, r, domain.SyncTypeBatch)
}

func (h *SyncHandler) syncBatch(w http.ResponseWriter, r *http.Request, syncType string) {
	var req domain.SyncBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	response, err := h.syncService.SyncBatch(r.Context(), syncType, req.Readings)
	if err != nil {
		problem.InternalError("Sync failed").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GetStatus handles GET /api/v1/sync/status
// @Summary Sync status
// @Description Recent synchronization runs and total stored readings.
// @Tags synchronization
// @Produce json
// @Success 200 {object} domain.SyncStatusResponse
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sync/status [get]
func (h *SyncHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	response, err := h.syncService.Status(r.Context())
	if err != nil {
		problem.InternalError("Failed to read sync status").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// TrainModel handles POST /api/v1/sync/train-model
// @Summary Trigger model training
// @Description Retrain the shared model. With user_id, trains only on that user's readings; the result still overwrites the single shared model.
// @Tags synchronization
// @Produce json
// @Param user_id query integer false "Train only on this user's readings"
// @Success 200 {object} domain.TrainingResult
// @Failure 400 {object} problem.Problem "Invalid user_id"
// @Failure 500 {object} problem.Problem "Training failed"
// @Router /sync/train-model [post]
func (h *SyncHandler) TrainModel(w http.ResponseWriter, r *http.Request) {
	var userID *int64
	if idStr := r.URL.Query().Get("user_id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			problem.BadRequest("user_id must be a positive integer").Write(w)
			return
		}
		userID = &id
	}

	result, err := h.trainingService.Train(r.Context(), userID)
	if err != nil {
		problem.InternalError("Training failed").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
