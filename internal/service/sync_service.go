package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DouzZ4/checkinc-ml-service/internal/domain"
	"github.com/DouzZ4/checkinc-ml-service/internal/repository"
)

// maxLoggedErrors caps how many row errors end up in a sync log row.
const maxLoggedErrors = 5

// SyncService ingests readings synchronized from the Java application,
// deduplicating on (user_id, timestamp) and recording batch runs in
// sync_logs.
type SyncService interface {
	// SyncReading stores one reading; duplicates are reported, not errors.
	SyncReading(ctx context.Context, req *domain.CreateReadingRequest) (*domain.SyncResponse, error)
	// SyncBatch stores many readings under one sync log entry.
	// syncType is "initial" for the first historical upload, "batch"
	// for periodic catch-ups.
	SyncBatch(ctx context.Context, syncType string, readings []domain.CreateReadingRequest) (*domain.SyncResponse, error)
	// Status summarizes recent sync runs.
	Status(ctx context.Context) (*domain.SyncStatusResponse, error)
}

type syncService struct {
	readingRepo repository.ReadingRepository
	syncLogRepo repository.SyncLogRepository
}

func NewSyncService(readingRepo repository.ReadingRepository, syncLogRepo repository.SyncLogRepository) SyncService {
	return &syncService{
		readingRepo: readingRepo,
		syncLogRepo: syncLogRepo,
	}
}

func (s *syncService) SyncReading(ctx context.Context, req *domain.CreateReadingRequest) (*domain.SyncResponse, error) {
	exists, err := s.readingRepo.ExistsAt(ctx, req.UserID, req.Timestamp)
	if err != nil {
		return nil, err
	}
	if exists {
		return &domain.SyncResponse{
			Status:  domain.SyncStatusDuplicate,
			Message: "Reading already exists",
		}, nil
	}

	reading := &domain.GlucoseReading{
		UserID:       req.UserID,
		GlucoseLevel: req.GlucoseLevel,
		Timestamp:    req.Timestamp,
		MomentOfDay:  req.MomentOfDay,
	}
	if err := s.readingRepo.Create(ctx, reading); err != nil {
		return nil, err
	}

	return &domain.SyncResponse{
		Status:        domain.SyncStatusSuccess,
		RecordsSynced: 1,
		Message:       fmt.Sprintf("Reading synced successfully (ID: %d)", reading.ID),
	}, nil
}

func (s *syncService) SyncBatch(ctx context.Context, syncType string, readings []domain.CreateReadingRequest) (*domain.SyncResponse, error) {
	syncLog := &domain.SyncLog{
		SyncType: syncType,
		Status:   domain.SyncStatusInProgress,
	}
	if err := s.syncLogRepo.Create(ctx, syncLog); err != nil {
		return nil, err
	}

	synced := 0
	var errs []string

	for _, req := range readings {
		exists, err := s.readingRepo.ExistsAt(ctx, req.UserID, req.Timestamp)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if exists {
			continue
		}

		reading := &domain.GlucoseReading{
			UserID:       req.UserID,
			GlucoseLevel: req.GlucoseLevel,
			Timestamp:    req.Timestamp,
			MomentOfDay:  req.MomentOfDay,
		}
		if err := s.readingRepo.Create(ctx, reading); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		synced++
	}

	now := time.Now().UTC()
	syncLog.RecordsCount = synced
	syncLog.CompletedAt = &now
	syncLog.Status = domain.SyncStatusSuccess
	if len(errs) > 0 {
		syncLog.Status = domain.SyncStatusPartial
		logged := errs
		if len(logged) > maxLoggedErrors {
			logged = logged[:maxLoggedErrors]
		}
		msg := strings.Join(logged, "; ")
		syncLog.ErrorMessage = &msg
	}
	if err := s.syncLogRepo.Update(ctx, syncLog); err != nil {
		return nil, err
	}

	return &domain.SyncResponse{
		Status:        syncLog.Status,
		RecordsSynced: synced,
		Errors:        errs,
		SyncID:        &syncLog.ID,
		Message:       fmt.Sprintf("Successfully synced %d readings", synced),
	}, nil
}

func (s *syncService) Status(ctx context.Context) (*domain.SyncStatusResponse, error) {
	logs, err := s.syncLogRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}

	total, err := s.readingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]domain.SyncLogDetail, 0, len(logs))
	for i := range logs {
		details = append(details, logs[i].ToDetail())
	}

	return &domain.SyncStatusResponse{
		TotalReadingsStored: total,
		RecentSyncs:         details,
	}, nil
}
