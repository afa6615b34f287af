package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/api/validation"
	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/internal/repository"
	"github.com/DouzZ4/checkinc-ml-service/internal/service"
	"github.com/DouzZ4/checkinc-ml-service/pkg/pagination"
	"github.com/DouzZ4/checkinc-ml-service/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type PredictionHandler struct {
	forecastService service.ForecastService
	riskService     service.RiskService
	readingRepo     repository.ReadingRepository
	predictionRepo  repository.PredictionRepository
}

func NewPredictionHandler(
	forecastService service.ForecastService,
	riskService service.RiskService,
	readingRepo repository.ReadingRepository,
	predictionRepo repository.PredictionRepository,
) *PredictionHandler {
	return &PredictionHandler{
		forecastService: forecastService,
		riskService:     riskService,
		readingRepo:     readingRepo,
		predictionRepo:  predictionRepo,
	}
}

// PredictNextHours handles POST /api/v1/predictions/next-hours
// @Summary Predict glucose levels
// @Description Forecast glucose levels for the next N hours with confidence scores.
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body domain.PredictRequest true "Prediction request"
// @Success 200 {object} domain.PredictResponse
// @Failure 400 {object} problem.Problem "Insufficient history for this user"
// @Failure 412 {object} problem.Problem "Model not trained yet"
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /predictions/next-hours [post]
func (h *PredictionHandler) PredictNextHours(w http.ResponseWriter, r *http.Request) {
	var req domain.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	result, err := h.forecastService.PredictNextHours(r.Context(), req.UserID, req.HoursAhead)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrModelNotTrained):
			problem.PreconditionFailed("Model not trained yet. Trigger a training run first.").Write(w)
		case errors.Is(err, domain.ErrInsufficientHistory):
			problem.BadRequest("Insufficient data for this user. Need at least 5 readings.").Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest("hours_ahead must be between 1 and 24").Write(w)
		default:
			problem.InternalError("Error generating predictions").Write(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, domain.PredictResponse{
		UserID:       req.UserID,
		Predictions:  result.Points,
		ModelVersion: result.ModelVersion,
		GeneratedAt:  time.Now().UTC(),
		Message:      result.Message,
	})
}

// AssessRisk handles POST /api/v1/predictions/risk-assessment
// @Summary Assess glycemic risk
// @Description Evaluate risk level from the last 30 days of readings, with recommendations.
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body domain.RiskAssessmentRequest true "Risk assessment request"
// @Success 200 {object} domain.RiskAssessmentResponse
// @Failure 422 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /predictions/risk-assessment [post]
func (h *PredictionHandler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	var req domain.RiskAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	assessment, err := h.riskService.Assess(r.Context(), req.UserID)
	if err != nil {
		problem.InternalError("Error assessing risk").Write(w)
		return
	}

	recommendations, err := h.riskService.Recommendations(r.Context(), req.UserID)
	if err != nil {
		problem.InternalError("Error generating recommendations").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, domain.RiskAssessmentResponse{
		UserID:              req.UserID,
		RiskLevel:           assessment.RiskLevel,
		RiskScore:           assessment.RiskScore,
		AvgGlucose:          assessment.AvgGlucose,
		StdDeviation:        assessment.StdDeviation,
		HypoglycemiaEvents:  assessment.HypoglycemiaEvents,
		HyperglycemiaEvents: assessment.HyperglycemiaEvents,
		Recommendations:     recommendations,
		Message:             assessment.Message,
		GeneratedAt:         time.Now().UTC(),
	})
}

// GetRecommendations handles GET /api/v1/predictions/recommendations/{userId}
// @Summary Get recommendations
// @Description Rule-based recommendations from the user's recent readings.
// @Tags predictions
// @Produce json
// @Param userId path integer true "User ID"
// @Success 200 {object} domain.RecommendationsResponse
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /predictions/recommendations/{userId} [get]
func (h *PredictionHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	count, err := h.readingRepo.CountByUser(r.Context(), userID)
	if err != nil {
		problem.InternalError("Error generating recommendations").Write(w)
		return
	}

	recommendations, err := h.riskService.Recommendations(r.Context(), userID)
	if err != nil {
		problem.InternalError("Error generating recommendations").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, domain.RecommendationsResponse{
		UserID:          userID,
		Recommendations: recommendations,
		BasedOnReadings: count,
		GeneratedAt:     time.Now().UTC(),
	})
}

// GetHistory handles GET /api/v1/predictions/history/{userId}
// @Summary Prediction history
// @Description Stored predictions for a user, newest first, cursor-paginated.
// @Tags predictions
// @Produce json
// @Param userId path integer true "User ID"
// @Param limit query integer false "Results per page (1-200)" default(50)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.PredictionHistoryResponse
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /predictions/history/{userId} [get]
func (h *PredictionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserID(r)
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter := domain.PredictionFilter{Cursor: r.URL.Query().Get("cursor")}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			problem.BadRequest("limit must be a positive integer").Write(w)
			return
		}
		filter.Limit = limit
	}

	predictions, err := h.predictionRepo.List(r.Context(), userID, filter)
	if err != nil {
		problem.InternalError("Failed to list predictions").Write(w)
		return
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	response := domain.PredictionHistoryResponse{
		UserID:      userID,
		Predictions: make([]domain.PredictionHistoryItem, 0, len(predictions)),
	}

	hasMore := len(predictions) > limit
	if hasMore {
		predictions = predictions[:limit]
	}
	for i := range predictions {
		response.Predictions = append(response.Predictions, predictions[i].ToHistoryItem())
	}
	response.Pagination.HasMore = hasMore
	if hasMore {
		last := predictions[len(predictions)-1]
		cursor := pagination.Cursor{ID: last.ID, CreatedAt: last.CreatedAt}
		response.Pagination.NextCursor = cursor.Encode()
	}

	writeJSON(w, http.StatusOK, response)
}

func parseUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
