package domain

// Training statuses returned by the training service.
const (
	TrainingStatusSuccess          = "success"
	TrainingStatusInsufficientData = "insufficient_data"
)

// TrainingResult reports the outcome of a training run. R2Score and
// MAE are computed on the training set itself, not held-out data, so
// they describe fit quality rather than generalization.
type TrainingResult struct {
	Status       string  `json:"status"`
	Message      string  `json:"message,omitempty"`
	SamplesUsed  int     `json:"samples_used,omitempty"`
	R2Score      float64 `json:"r2_score,omitempty"`
	MAE          float64 `json:"mae,omitempty"`
	ModelVersion string  `json:"model_version,omitempty"`
}
