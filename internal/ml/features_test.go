package ml

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
)

func reading(userID int64, level float64, ts time.Time, moment *string) domain.GlucoseReading {
	return domain.GlucoseReading{
		UserID:       userID,
		GlucoseLevel: level,
		Timestamp:    ts,
		MomentOfDay:  moment,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestBuildFeatures_EmptyInput(t *testing.T) {
	_, err := BuildFeatures(nil)
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestBuildFeatures_SortsAndPreservesLength(t *testing.T) {
	base := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC) // a Monday

	// Deliberately out of order
	readings := []domain.GlucoseReading{
		reading(1, 120, base.Add(6*time.Hour), nil),
		reading(1, 100, base, nil),
		reading(1, 110, base.Add(3*time.Hour), nil),
	}

	rows, err := BuildFeatures(readings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != len(readings) {
		t.Fatalf("got %d rows, want %d", len(rows), len(readings))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Timestamp.Before(rows[i-1].Timestamp) {
			t.Fatalf("rows not sorted ascending at index %d", i)
		}
	}
	if rows[0].GlucoseLevel != 100 || rows[2].GlucoseLevel != 120 {
		t.Fatalf("rows not ordered by timestamp: %+v", rows)
	}
}

func TestBuildFeatures_TimeFeatures(t *testing.T) {
	// 2024-03-04 is a Monday
	monday := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
	sunday := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)

	rows, err := BuildFeatures([]domain.GlucoseReading{
		reading(1, 100, monday, nil),
		reading(1, 110, sunday, nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rows[0].HourOfDay != 14 || rows[0].DayOfWeek != 0 {
		t.Errorf("monday row: hour=%d day=%d, want 14/0", rows[0].HourOfDay, rows[0].DayOfWeek)
	}
	if rows[1].HourOfDay != 6 || rows[1].DayOfWeek != 6 {
		t.Errorf("sunday row: hour=%d day=%d, want 6/6", rows[1].HourOfDay, rows[1].DayOfWeek)
	}
}

func TestBuildFeatures_FirstRowSubstitutions(t *testing.T) {
	base := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	rows, err := BuildFeatures([]domain.GlucoseReading{
		reading(1, 90, base, nil),
		reading(1, 120, base.Add(90*time.Minute), nil),
		reading(1, 150, base.Add(4*time.Hour), nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First row: prev_level is the whole-sequence mean, gap defaults to 24h
	wantMean := (90.0 + 120.0 + 150.0) / 3.0
	if rows[0].PrevLevel != wantMean {
		t.Errorf("first row prev_level = %v, want %v", rows[0].PrevLevel, wantMean)
	}
	if rows[0].TimeSinceLastHours != 24.0 {
		t.Errorf("first row time_since_last = %v, want 24", rows[0].TimeSinceLastHours)
	}

	// Subsequent rows follow the actual predecessor
	if rows[1].PrevLevel != 90 {
		t.Errorf("second row prev_level = %v, want 90", rows[1].PrevLevel)
	}
	if rows[1].TimeSinceLastHours != 1.5 {
		t.Errorf("second row time_since_last = %v, want 1.5", rows[1].TimeSinceLastHours)
	}
	if rows[2].TimeSinceLastHours != 2.5 {
		t.Errorf("third row time_since_last = %v, want 2.5", rows[2].TimeSinceLastHours)
	}
}

func TestBuildFeatures_RollingWindow(t *testing.T) {
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	levels := []float64{100, 110, 120, 130, 140, 150, 160, 170, 180}
	var readings []domain.GlucoseReading
	for i, l := range levels {
		readings = append(readings, reading(1, l, base.Add(time.Duration(i)*time.Hour), nil))
	}

	rows, err := BuildFeatures(readings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Single-row window: avg is the level itself, std undefined -> 0
	if rows[0].Avg7 != 100 || rows[0].Std7 != 0 {
		t.Errorf("row 0 window: avg=%v std=%v, want 100/0", rows[0].Avg7, rows[0].Std7)
	}

	// Two-row window: sample std of [100,110]
	if rows[1].Avg7 != 105 {
		t.Errorf("row 1 avg = %v, want 105", rows[1].Avg7)
	}
	wantStd := math.Sqrt(((100.0-105)*(100-105) + (110.0-105)*(110-105)) / 1.0)
	if math.Abs(rows[1].Std7-wantStd) > 1e-9 {
		t.Errorf("row 1 std = %v, want %v", rows[1].Std7, wantStd)
	}

	// Window is capped at 7 rows by position: row 8 covers levels[2:9]
	wantAvg := (120.0 + 130 + 140 + 150 + 160 + 170 + 180) / 7
	if math.Abs(rows[8].Avg7-wantAvg) > 1e-9 {
		t.Errorf("row 8 avg = %v, want %v", rows[8].Avg7, wantAvg)
	}
}

func TestEncodeMoment(t *testing.T) {
	tests := []struct {
		name   string
		moment *string
		want   int
	}{
		{"nil moment", nil, 0},
		{"fasting aliases to zero", strPtr("En Ayuno"), 0},
		{"before breakfast", strPtr("Antes de Desayuno"), 1},
		{"after dinner", strPtr("Después de Cena"), 6},
		{"unmapped label", strPtr("Medianoche"), 0},
		{"empty string", strPtr(""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeMoment(tt.moment); got != tt.want {
				t.Errorf("EncodeMoment = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFeatureRow_Vector(t *testing.T) {
	row := FeatureRow{
		HourOfDay:          8,
		DayOfWeek:          2,
		MomentEncoded:      3,
		Avg7:               115.5,
		Std7:               9.1,
		PrevLevel:          120,
		TimeSinceLastHours: 2.5,
	}

	v := row.Vector()
	if len(v) != FeatureCount {
		t.Fatalf("vector length = %d, want %d", len(v), FeatureCount)
	}
	want := []float64{8, 2, 3, 115.5, 9.1, 120, 2.5}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("vector[%d] = %v, want %v", i, v[i], want[i])
		}
	}
}
