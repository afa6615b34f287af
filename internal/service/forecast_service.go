package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/internal/ml"
	"github.com/DouzZ4/checkinc-ml-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MinForecastHistory is the minimum reading count per user before
	// forecasting is possible. Distinct from the model-wide training
	// threshold.
	MinForecastHistory = 5

	// ForecastHistoryWindow caps how many recent readings seed a forecast.
	ForecastHistoryWindow = 30

	// DefaultMaxHorizonHours bounds how far ahead one call may predict.
	DefaultMaxHorizonHours = 24

	confidenceDecayPerHour = 0.05
	confidenceFloor        = 0.5
)

// ForecastService performs the recursive multi-step rollout: each
// step's prediction feeds the next step's prev_level, so errors
// compound across the horizon. That feedback loop is intentional.
type ForecastService interface {
	// PredictNextHours forecasts one point per whole hour from 1 to
	// hoursAhead. The result carries a message when the points could
	// not all be recorded durably.
	PredictNextHours(ctx context.Context, userID int64, hoursAhead int) (*domain.ForecastResult, error)
}

type forecastService struct {
	readingRepo    repository.ReadingRepository
	predictionRepo repository.PredictionRepository
	store          *ml.Store
	maxHorizon     int
}

func NewForecastService(
	readingRepo repository.ReadingRepository,
	predictionRepo repository.PredictionRepository,
	store *ml.Store,
	maxHorizon int,
) ForecastService {
	if maxHorizon <= 0 {
		maxHorizon = DefaultMaxHorizonHours
	}
	return &forecastService{
		readingRepo:    readingRepo,
		predictionRepo: predictionRepo,
		store:          store,
		maxHorizon:     maxHorizon,
	}
}

func (s *forecastService) PredictNextHours(ctx context.Context, userID int64, hoursAhead int) (*domain.ForecastResult, error) {
	tracer := otel.Tracer("checkinc-ml/forecast")
	ctx, span := tracer.Start(ctx, "ForecastService.PredictNextHours",
		trace.WithAttributes(
			attribute.Int64("forecast.user_id", userID),
			attribute.Int("forecast.hours_ahead", hoursAhead),
		),
	)
	defer span.End()

	if hoursAhead < 1 || hoursAhead > s.maxHorizon {
		return nil, domain.ErrInvalidInput
	}

	// Snapshot reference: training replaces the artifact wholesale, so
	// this forecast never sees a half-written model.
	artifact := s.store.Current()
	if !artifact.Trained() {
		return nil, domain.ErrModelNotTrained
	}

	recent, err := s.readingRepo.ListRecent(ctx, userID, ForecastHistoryWindow)
	if err != nil {
		return nil, err
	}
	if len(recent) < MinForecastHistory {
		return nil, domain.ErrInsufficientHistory
	}

	// ListRecent is newest-first; feature building wants oldest-first.
	readings := make([]domain.GlucoseReading, len(recent))
	for i, r := range recent {
		readings[len(recent)-1-i] = r
	}

	rows, err := ml.BuildFeatures(readings)
	if err != nil {
		return nil, err
	}

	last := rows[len(rows)-1]
	lastTimestamp := last.Timestamp
	currentLevel := last.GlucoseLevel

	points := make([]domain.ForecastPoint, 0, hoursAhead)
	var sinkFailures int

	for h := 1; h <= hoursAhead; h++ {
		futureTime := lastTimestamp.Add(time.Duration(h) * time.Hour)

		// avg_7/std_7 stay frozen at the last historical values; the
		// moment of a future reading is unknowable, so it encodes 0.
		features := []float64{
			float64(futureTime.Hour()),
			float64((int(futureTime.Weekday()) + 6) % 7),
			0,
			last.Avg7,
			last.Std7,
			currentLevel,
			1.0,
		}

		predicted, err := artifact.Predict(features)
		if err != nil {
			return nil, err
		}

		confidence := 1.0 - confidenceDecayPerHour*float64(h)
		if confidence < confidenceFloor {
			confidence = confidenceFloor
		}

		point := domain.ForecastPoint{
			Timestamp:       futureTime,
			PredictedLevel:  round2(predicted),
			ConfidenceScore: round2(confidence),
		}
		points = append(points, point)
		predictionsGeneratedTotal.Inc()

		if err := s.predictionRepo.Create(ctx, &domain.Prediction{
			UserID:                 userID,
			PredictedLevel:         point.PredictedLevel,
			PredictionForTimestamp: point.Timestamp,
			ConfidenceScore:        point.ConfidenceScore,
			ModelVersion:           artifact.Version,
		}); err != nil {
			sinkFailures++
			log.Printf("Failed to record prediction for user %d at %s: %v",
				userID, point.Timestamp.Format(time.RFC3339), err)
		}

		// Feedback: this step's output is the next step's prev_level.
		currentLevel = predicted
	}

	result := &domain.ForecastResult{
		Points:       points,
		ModelVersion: artifact.Version,
	}
	if sinkFailures > 0 {
		span.SetAttributes(attribute.Int("forecast.sink_failures", sinkFailures))
		result.Message = "Predictions generated but some could not be recorded"
	}

	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
