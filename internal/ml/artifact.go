package ml

import (
	"fmt"
	"math"
	"time"
)

// InitialVersion is the version assigned to a freshly initialized
// (untrained) artifact.
const InitialVersion = "1.0.0"

// Scaler standardizes feature vectors with the mean and deviation
// captured at training time. Fit is never incremental: every training
// run replaces the statistics wholesale.
type Scaler struct {
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

// Fit captures per-column mean and population standard deviation from
// the training matrix. Columns with zero variance get scale 1 so
// transforming them yields 0 instead of dividing by zero.
func (s *Scaler) Fit(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}
	cols := len(matrix[0])
	s.Means = make([]float64, cols)
	s.Scales = make([]float64, cols)

	n := float64(len(matrix))
	for c := 0; c < cols; c++ {
		sum := 0.0
		for _, row := range matrix {
			sum += row[c]
		}
		mean := sum / n

		variance := 0.0
		for _, row := range matrix {
			d := row[c] - mean
			variance += d * d
		}
		variance /= n

		scale := math.Sqrt(variance)
		if scale == 0 {
			scale = 1
		}
		s.Means[c] = mean
		s.Scales[c] = scale
	}
}

// Transform standardizes a single feature vector.
func (s *Scaler) Transform(features []float64) []float64 {
	out := make([]float64, len(features))
	for i, v := range features {
		out[i] = (v - s.Means[i]) / s.Scales[i]
	}
	return out
}

// Artifact is the persisted pair of fitted scaler and regressor plus a
// version tag. Weights holds the intercept first, then one coefficient
// per feature; an empty Weights slice means the model was never trained.
type Artifact struct {
	Version   string    `json:"version"`
	Scaler    Scaler    `json:"scaler"`
	Weights   []float64 `json:"weights"`
	TrainedAt time.Time `json:"trained_at,omitempty"`
}

// NewArtifact returns a fresh untrained artifact.
func NewArtifact() *Artifact {
	return &Artifact{Version: InitialVersion}
}

// Trained reports whether the artifact holds a fitted model.
func (a *Artifact) Trained() bool {
	return len(a.Weights) == FeatureCount+1 &&
		len(a.Scaler.Means) == FeatureCount &&
		len(a.Scaler.Scales) == FeatureCount
}

// Predict standardizes the raw feature vector with the stored scaler
// and evaluates the fitted linear model.
func (a *Artifact) Predict(features []float64) (float64, error) {
	if !a.Trained() {
		return 0, fmt.Errorf("artifact version %s holds no fitted model", a.Version)
	}
	if len(features) != FeatureCount {
		return 0, fmt.Errorf("expected %d features, got %d", FeatureCount, len(features))
	}

	scaled := a.Scaler.Transform(features)
	prediction := a.Weights[0]
	for i, v := range scaled {
		prediction += a.Weights[i+1] * v
	}
	return prediction, nil
}
