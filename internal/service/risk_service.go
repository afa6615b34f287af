package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// RiskWindowDays is the lookback window for risk assessment.
	RiskWindowDays = 30

	// MinRiskReadings is the minimum reading count for an assessment.
	MinRiskReadings = 5

	// Clinical thresholds in mg/dL.
	hypoglycemiaThreshold  = 70.0
	hyperglycemiaThreshold = 180.0
	targetRangeLow         = 80.0
	targetRangeHigh        = 130.0
	elevatedAverage        = 150.0
	highVariability        = 30.0

	// Risk level boundaries on the clamped score.
	mediumRiskThreshold = 0.30
	highRiskThreshold   = 0.60
)

// RiskService computes the heuristic risk score and the rule-based
// recommendations from recent raw readings. It is independent of the
// trained model and recomputes everything on every call.
type RiskService interface {
	Assess(ctx context.Context, userID int64) (*domain.RiskAssessment, error)
	Recommendations(ctx context.Context, userID int64) ([]string, error)
}

type riskService struct {
	readingRepo repository.ReadingRepository
}

func NewRiskService(readingRepo repository.ReadingRepository) RiskService {
	return &riskService{readingRepo: readingRepo}
}

func (s *riskService) Assess(ctx context.Context, userID int64) (*domain.RiskAssessment, error) {
	tracer := otel.Tracer("checkinc-ml/risk")
	ctx, span := tracer.Start(ctx, "RiskService.Assess",
		trace.WithAttributes(attribute.Int64("risk.user_id", userID)),
	)
	defer span.End()

	cutoff := time.Now().UTC().AddDate(0, 0, -RiskWindowDays)
	readings, err := s.readingRepo.ListSince(ctx, userID, cutoff)
	if err != nil {
		return nil, err
	}

	if len(readings) < MinRiskReadings {
		riskAssessmentsTotal.WithLabelValues(string(domain.RiskUnknown)).Inc()
		return &domain.RiskAssessment{
			RiskLevel:    domain.RiskUnknown,
			RiskScore:    0.0,
			ReadingsUsed: len(readings),
			Message:      "Insufficient data for assessment",
		}, nil
	}

	avg, std := meanAndPopulationStd(readings)

	hypoCount := 0
	hyperCount := 0
	for _, r := range readings {
		if r.GlucoseLevel < hypoglycemiaThreshold {
			hypoCount++
		}
		if r.GlucoseLevel > hyperglycemiaThreshold {
			hyperCount++
		}
	}

	// Four independent additive components, clamped to [0,1]. An
	// average inside [80,130] contributes nothing from the first two.
	score := 0.0
	if avg < targetRangeLow {
		score += 0.3
	} else if avg > targetRangeHigh {
		score += 0.2 * math.Min((avg-targetRangeHigh)/70.0, 1.0)
	}
	if std > highVariability {
		score += 0.2
	}
	score += math.Min(float64(hypoCount)*0.1, 0.3)
	score += math.Min(float64(hyperCount)*0.05, 0.2)
	score = math.Min(score, 1.0)

	level := domain.RiskLow
	if score >= highRiskThreshold {
		level = domain.RiskHigh
	} else if score >= mediumRiskThreshold {
		level = domain.RiskMedium
	}

	riskAssessmentsTotal.WithLabelValues(string(level)).Inc()
	span.SetAttributes(
		attribute.Float64("risk.score", score),
		attribute.String("risk.level", string(level)),
	)

	return &domain.RiskAssessment{
		RiskLevel:           level,
		RiskScore:           round2(score),
		AvgGlucose:          round2(avg),
		StdDeviation:        round2(std),
		HypoglycemiaEvents:  hypoCount,
		HyperglycemiaEvents: hyperCount,
		ReadingsUsed:        len(readings),
	}, nil
}

// Recommendations composes the rule list in fixed order: average band,
// variability, hypoglycemia count, hyperglycemia count, a generic
// monitoring message when nothing triggered, and always the clinician
// disclaimer last.
func (s *riskService) Recommendations(ctx context.Context, userID int64) ([]string, error) {
	assessment, err := s.Assess(ctx, userID)
	if err != nil {
		return nil, err
	}

	var recommendations []string

	if assessment.RiskLevel != domain.RiskUnknown {
		switch {
		case assessment.AvgGlucose > elevatedAverage:
			recommendations = append(recommendations,
				"Your average glucose is elevated. Consider reviewing your meal plan with your doctor.")
		case assessment.AvgGlucose < targetRangeLow:
			recommendations = append(recommendations,
				"Your average glucose is low. Talk to your doctor about adjusting your medication.")
		default:
			recommendations = append(recommendations,
				"Your average glucose is in the target range. Great work!")
		}

		if assessment.StdDeviation > highVariability {
			recommendations = append(recommendations,
				"Your glucose levels vary a lot. Try to keep regular meal times.")
		}

		if assessment.HypoglycemiaEvents > 2 {
			recommendations = append(recommendations, fmt.Sprintf(
				"You have had %d hypoglycemia episodes. Consider keeping emergency snacks available.",
				assessment.HypoglycemiaEvents))
		}

		if assessment.HyperglycemiaEvents > 5 {
			recommendations = append(recommendations, fmt.Sprintf(
				"You have had %d hyperglycemia episodes. Review your treatment plan with your doctor.",
				assessment.HyperglycemiaEvents))
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Continue monitoring your levels regularly.")
	}

	recommendations = append(recommendations,
		"Remember: this system is a support tool. Always consult your doctor.")

	return recommendations, nil
}

func meanAndPopulationStd(readings []domain.GlucoseReading) (avg, std float64) {
	n := float64(len(readings))
	for _, r := range readings {
		avg += r.GlucoseLevel
	}
	avg /= n

	variance := 0.0
	for _, r := range readings {
		d := r.GlucoseLevel - avg
		variance += d * d
	}
	return avg, math.Sqrt(variance / n)
}
