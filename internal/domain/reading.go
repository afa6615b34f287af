package domain

import (
	"time"
)

// GlucoseReading mirrors the 'glucosa' table of the Java application.
// Readings are immutable once ingested; the sync endpoints create them
// and the prediction pipeline only reads them.
type GlucoseReading struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64      `gorm:"not null;index:idx_readings_user_timestamp,unique" json:"user_id"`
	GlucoseLevel float64    `gorm:"not null" json:"glucose_level"`
	Timestamp    time.Time  `gorm:"not null;index:idx_readings_user_timestamp,unique" json:"timestamp"`
	MomentOfDay  *string    `gorm:"type:varchar(50)" json:"moment_of_day,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false" json:"-"`
}

func (GlucoseReading) TableName() string {
	return "glucose_readings"
}

// CreateReadingRequest is the payload for syncing a single glucose reading.
// @Description Glucose reading synchronized from the Java application.
type CreateReadingRequest struct {
	// User ID from the Java application
	UserID int64 `json:"user_id" validate:"required,gt=0" example:"42"`
	// Glucose level in mg/dL
	GlucoseLevel float64 `json:"glucose_level" validate:"required,gt=0,lt=1000" example:"112.5"`
	// When the reading was taken (RFC3339)
	Timestamp time.Time `json:"timestamp" validate:"required" example:"2024-03-01T08:30:00Z"`
	// Measurement context, e.g. "En Ayuno", "Antes de Desayuno"
	MomentOfDay *string `json:"moment_of_day,omitempty" validate:"omitempty,max=50" example:"En Ayuno"`
}

// ReadingResponse is the response body for a stored reading.
type ReadingResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	GlucoseLevel float64   `json:"glucose_level"`
	Timestamp    time.Time `json:"timestamp"`
	MomentOfDay  *string   `json:"moment_of_day,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *GlucoseReading) ToResponse() ReadingResponse {
	return ReadingResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		GlucoseLevel: r.GlucoseLevel,
		Timestamp:    r.Timestamp,
		MomentOfDay:  r.MomentOfDay,
		CreatedAt:    r.CreatedAt,
	}
}
