package domain

import "time"

// RiskLevel classifies recent glycemic control.
// @Description Risk classification: unknown, low, medium or high.
type RiskLevel string

const (
	RiskUnknown RiskLevel = "unknown"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
)

// RiskAssessment summarizes the last 30 days of readings. It is
// recomputed on every call, never cached, and is independent of the
// trained model.
type RiskAssessment struct {
	RiskLevel           RiskLevel `json:"risk_level"`
	RiskScore           float64   `json:"risk_score"`
	AvgGlucose          float64   `json:"avg_glucose"`
	StdDeviation        float64   `json:"std_deviation"`
	HypoglycemiaEvents  int       `json:"hypoglycemia_events"`
	HyperglycemiaEvents int       `json:"hyperglycemia_events"`
	ReadingsUsed        int       `json:"readings_used"`
	Message             string    `json:"message,omitempty"`
}

// RiskAssessmentRequest is the payload for a risk assessment.
type RiskAssessmentRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0" example:"42"`
}

// RiskAssessmentResponse is the risk assessment plus recommendations.
type RiskAssessmentResponse struct {
	UserID              int64     `json:"user_id"`
	RiskLevel           RiskLevel `json:"risk_level"`
	RiskScore           float64   `json:"risk_score"`
	AvgGlucose          float64   `json:"avg_glucose"`
	StdDeviation        float64   `json:"std_deviation"`
	HypoglycemiaEvents  int       `json:"hypoglycemia_events"`
	HyperglycemiaEvents int       `json:"hyperglycemia_events"`
	Recommendations     []string  `json:"recommendations"`
	Message             string    `json:"message,omitempty"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// RecommendationsResponse lists the rule-based recommendations for a user.
type RecommendationsResponse struct {
	UserID          int64     `json:"user_id"`
	Recommendations []string  `json:"recommendations"`
	BasedOnReadings int64     `json:"based_on_readings"`
	GeneratedAt     time.Time `json:"generated_at"`
}
