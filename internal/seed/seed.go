package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"gorm.io/gorm"
)

const (
	seededDays      = 40
	readingsPerDay  = 4
	baselineGlucose = 110.0
	mealSpike       = 35.0
	randomAmplitude = 25.0
)

var seedMoments = []string{
	"En Ayuno",
	"Después de Desayuno",
	"Antes de Almuerzo",
	"Después de Cena",
}

var seedUserIDs = []int64{101, 102, 103}

// Run seeds the database with sample glucose readings. Safe to call
// multiple times: existing (user, timestamp) pairs are kept.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.GlucoseReading{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, userID := range seedUserIDs {
		if err := seedReadingsForUser(db, userID, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedReadingsForUser(db *gorm.DB, userID int64, rng *rand.Rand) error {
	now := time.Now().UTC()
	hours := []int{7, 9, 13, 20}

	for day := 0; day < seededDays; day++ {
		date := now.AddDate(0, 0, -day)
		for slot := 0; slot < readingsPerDay; slot++ {
			ts := time.Date(date.Year(), date.Month(), date.Day(), hours[slot], rng.Intn(30), 0, 0, time.UTC)

			level := baselineGlucose + rng.Float64()*randomAmplitude - randomAmplitude/2
			// Post-meal slots run higher
			if slot == 1 || slot == 3 {
				level += mealSpike
			}

			moment := seedMoments[slot]
			reading := domain.GlucoseReading{
				UserID:       userID,
				GlucoseLevel: float64(int(level*100)) / 100,
				Timestamp:    ts,
				MomentOfDay:  &moment,
			}

			err := db.Where("user_id = ? AND timestamp = ?", userID, ts).
				FirstOrCreate(&reading).Error
			if err != nil {
				return fmt.Errorf("failed to seed reading for user %d: %w", userID, err)
			}
		}
	}
	return nil
}
