package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/internal/ml"
	"github.com/DouzZ4/checkinc-ml-service/internal/repository"
	"github.com/sajari/regression"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMinTrainingSamples is the minimum reading count required to
// fit the model.
const DefaultMinTrainingSamples = 30

// TrainingService fits the scaler and regressor on historical readings
// and replaces the shared model artifact.
//
// There is exactly one artifact process-wide: training with a user
// filter narrows the training set but still overwrites the shared
// model. Personalization is transient by design.
type TrainingService interface {
	// Train fits the model on all readings, or only one user's when
	// userID is non-nil, and reports fit quality.
	Train(ctx context.Context, userID *int64) (*domain.TrainingResult, error)
}

type trainingService struct {
	readingRepo repository.ReadingRepository
	store       *ml.Store
	minSamples  int
}

func NewTrainingService(readingRepo repository.ReadingRepository, store *ml.Store, minSamples int) TrainingService {
	if minSamples <= 0 {
		minSamples = DefaultMinTrainingSamples
	}
	return &trainingService{
		readingRepo: readingRepo,
		store:       store,
		minSamples:  minSamples,
	}
}

func (s *trainingService) Train(ctx context.Context, userID *int64) (*domain.TrainingResult, error) {
	tracer := otel.Tracer("checkinc-ml/training")
	ctx, span := tracer.Start(ctx, "TrainingService.Train",
		trace.WithAttributes(attribute.Bool("train.user_filtered", userID != nil)),
	)
	defer span.End()

	readings, err := s.readingRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(readings) < s.minSamples {
		trainingRunsTotal.WithLabelValues(domain.TrainingStatusInsufficientData).Inc()
		return &domain.TrainingResult{
			Status: domain.TrainingStatusInsufficientData,
			Message: fmt.Sprintf("Need at least %d readings, got %d",
				s.minSamples, len(readings)),
		}, nil
	}

	rows, err := ml.BuildFeatures(readings)
	if err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(rows))
	targets := make([]float64, len(rows))
	for i, row := range rows {
		matrix[i] = row.Vector()
		targets[i] = row.GlucoseLevel
	}

	// Scaler statistics come from this training set only, never
	// updated incrementally.
	var scaler ml.Scaler
	scaler.Fit(matrix)

	r := new(regression.Regression)
	r.SetObserved("glucose_level")
	for i, name := range ml.FeatureNames {
		r.SetVar(i, name)
	}
	for i, features := range matrix {
		r.Train(regression.DataPoint(targets[i], scaler.Transform(features)))
	}
	if err := r.Run(); err != nil {
		return nil, fmt.Errorf("regression fit failed: %w", err)
	}

	weights := make([]float64, ml.FeatureCount+1)
	for i := range weights {
		weights[i] = r.Coeff(i)
	}

	current := s.store.Current()
	artifact := &ml.Artifact{
		Version:   current.Version,
		Scaler:    scaler,
		Weights:   weights,
		TrainedAt: time.Now().UTC(),
	}

	// In-sample metrics on the training set itself, evaluated through
	// the artifact so they measure exactly what forecasting will run.
	mae := 0.0
	for i, features := range matrix {
		predicted, err := artifact.Predict(features)
		if err != nil {
			return nil, err
		}
		mae += math.Abs(predicted - targets[i])
	}
	mae /= float64(len(matrix))

	// Scaler, regressor and version replace the previous artifact as
	// one atomic unit.
	if err := s.store.Replace(artifact); err != nil {
		trainingRunsTotal.WithLabelValues(domain.SyncStatusFailed).Inc()
		return nil, err
	}

	trainingRunsTotal.WithLabelValues(domain.TrainingStatusSuccess).Inc()
	trainingR2Score.Set(r.R2)
	span.SetAttributes(
		attribute.Int("train.samples", len(rows)),
		attribute.Float64("train.r2", r.R2),
		attribute.Float64("train.mae", mae),
	)

	return &domain.TrainingResult{
		Status:       domain.TrainingStatusSuccess,
		SamplesUsed:  len(rows),
		R2Score:      r.R2,
		MAE:          mae,
		ModelVersion: artifact.Version,
	}, nil
}
