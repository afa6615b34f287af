// Package ml implements the glucose prediction core: feature
// engineering over reading history, the fitted regression artifact,
// and its on-disk store.
package ml

import (
	"math"
	"sort"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
)

// FeatureCount is the width of the feature vector fed to the regressor.
const FeatureCount = 7

// FeatureNames labels the regressor inputs, in vector order.
var FeatureNames = [FeatureCount]string{
	"hour_of_day",
	"day_of_week",
	"moment_encoded",
	"avg_7",
	"std_7",
	"prev_level",
	"time_since_last",
}

// momentEncoding maps measurement contexts to categorical codes.
// Anything not in the table (including a missing moment) encodes to 0,
// so an unknown moment and "En Ayuno" deliberately share a code.
var momentEncoding = map[string]int{
	"En Ayuno":             0,
	"Antes de Desayuno":    1,
	"Después de Desayuno":  2,
	"Antes de Almuerzo":    3,
	"Después de Almuerzo":  4,
	"Antes de Cena":        5,
	"Después de Cena":      6,
}

const rollingWindow = 7

// FeatureRow is the fixed-width numeric row derived from one reading
// and its recent history.
type FeatureRow struct {
	Timestamp    time.Time
	GlucoseLevel float64

	HourOfDay          int
	DayOfWeek          int
	MomentEncoded      int
	Avg7               float64
	Std7               float64
	PrevLevel          float64
	TimeSinceLastHours float64
}

// Vector returns the row as a regressor input.
func (r *FeatureRow) Vector() []float64 {
	return []float64{
		float64(r.HourOfDay),
		float64(r.DayOfWeek),
		float64(r.MomentEncoded),
		r.Avg7,
		r.Std7,
		r.PrevLevel,
		r.TimeSinceLastHours,
	}
}

// EncodeMoment returns the categorical code for a measurement context.
func EncodeMoment(moment *string) int {
	if moment == nil {
		return 0
	}
	return momentEncoding[*moment]
}

// BuildFeatures derives one FeatureRow per reading, ordered by
// timestamp ascending. Rolling statistics use up to 7 rows by position,
// not elapsed time. Returns domain.ErrInsufficientData for an empty
// input; callers enforce their own stronger minimums.
func BuildFeatures(readings []domain.GlucoseReading) ([]FeatureRow, error) {
	if len(readings) == 0 {
		return nil, domain.ErrInsufficientData
	}

	sorted := make([]domain.GlucoseReading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	meanLevel := 0.0
	for _, r := range sorted {
		meanLevel += r.GlucoseLevel
	}
	meanLevel /= float64(len(sorted))

	rows := make([]FeatureRow, len(sorted))
	for i, r := range sorted {
		row := FeatureRow{
			Timestamp:    r.Timestamp,
			GlucoseLevel: r.GlucoseLevel,
			HourOfDay:    r.Timestamp.Hour(),
			// Monday=0 .. Sunday=6, matching the training data layout
			DayOfWeek:     (int(r.Timestamp.Weekday()) + 6) % 7,
			MomentEncoded: EncodeMoment(r.MomentOfDay),
		}

		start := i - rollingWindow + 1
		if start < 0 {
			start = 0
		}
		row.Avg7, row.Std7 = windowStats(sorted[start : i+1])

		if i == 0 {
			row.PrevLevel = meanLevel
			row.TimeSinceLastHours = 24.0
		} else {
			row.PrevLevel = sorted[i-1].GlucoseLevel
			row.TimeSinceLastHours = r.Timestamp.Sub(sorted[i-1].Timestamp).Hours()
		}

		rows[i] = row
	}

	return rows, nil
}

// windowStats returns the mean and sample standard deviation of the
// glucose levels in the window. Std is 0 when fewer than 2 rows.
func windowStats(window []domain.GlucoseReading) (avg, std float64) {
	n := float64(len(window))
	for _, r := range window {
		avg += r.GlucoseLevel
	}
	avg /= n

	if len(window) < 2 {
		return avg, 0
	}

	sumSquares := 0.0
	for _, r := range window {
		d := r.GlucoseLevel - avg
		sumSquares += d * d
	}
	return avg, math.Sqrt(sumSquares / (n - 1))
}
