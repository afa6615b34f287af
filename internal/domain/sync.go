package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sync types and statuses recorded in sync_logs.
const (
	SyncTypeInitial = "initial"
	SyncTypeSingle  = "single"
	SyncTypeBatch   = "batch"

	SyncStatusInProgress = "in_progress"
	SyncStatusSuccess    = "success"
	SyncStatusPartial    = "partial"
	SyncStatusFailed     = "failed"
	SyncStatusDuplicate  = "duplicate"
)

// SyncLog records one synchronization run from the Java application.
type SyncLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SyncType     string     `gorm:"type:varchar(50);not null" json:"sync_type"`
	RecordsCount int        `gorm:"default:0" json:"records_count"`
	Status       string     `gorm:"type:varchar(20);not null" json:"status"`
	ErrorMessage *string    `gorm:"type:varchar(500)" json:"error_message,omitempty"`
	StartedAt    time.Time  `gorm:"autoCreateTime" json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func (SyncLog) TableName() string {
	return "sync_logs"
}

// SyncBatchRequest carries multiple readings in one sync call.
// @Description Bulk synchronization payload (1-1000 readings).
type SyncBatchRequest struct {
	Readings []CreateReadingRequest `json:"readings" validate:"required,min=1,max=1000,dive"`
}

// SyncResponse reports the outcome of a sync operation.
type SyncResponse struct {
	Status        string     `json:"status"`
	RecordsSynced int        `json:"records_synced"`
	Errors        []string   `json:"errors,omitempty"`
	SyncID        *uuid.UUID `json:"sync_id,omitempty"`
	Message       string     `json:"message"`
}

// SyncStatusResponse summarizes recent sync runs.
type SyncStatusResponse struct {
	TotalReadingsStored int64           `json:"total_readings_stored"`
	RecentSyncs         []SyncLogDetail `json:"recent_syncs"`
}

// SyncLogDetail is one sync log entry in the status listing.
type SyncLogDetail struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Records     int        `json:"records"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (l *SyncLog) ToDetail() SyncLogDetail {
	return SyncLogDetail{
		ID:          l.ID,
		Type:        l.SyncType,
		Records:     l.RecordsCount,
		Status:      l.Status,
		StartedAt:   l.StartedAt,
		CompletedAt: l.CompletedAt,
	}
}
