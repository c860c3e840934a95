package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/mmcdole/loofah/internal/domain"
)

// SyncService talks to the backend's sync endpoints
type SyncService struct {
	api    domain.Requester
	logger *slog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(api domain.Requester, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{api: api, logger: logger}
}

// TriggerSync asks the backend to start a sync job
func (s *SyncService) TriggerSync(ctx context.Context) error {
	if err := s.api.Send(ctx, http.MethodPost, "/sync", nil, nil); err != nil {
		return err
	}
	s.logger.Info("sync triggered")
	return nil
}

// SyncStatus returns the backend's current job status
func (s *SyncService) SyncStatus(ctx context.Context) (domain.SyncStatus, error) {
	var status domain.SyncStatus
	if err := s.api.Send(ctx, http.MethodGet, "/sync/status", nil, &status); err != nil {
		return domain.SyncStatus{}, err
	}
	if status.Progress < 0 || status.Progress > 100 {
		return domain.SyncStatus{}, &domain.RequestError{
			Op: "GET /sync/status", Kind: domain.KindProtocol,
			Err: fmt.Errorf("progress %d out of range", status.Progress),
		}
	}
	return status, nil
}

// ListSyncLogs returns recent sync history, newest first
func (s *SyncService) ListSyncLogs(ctx context.Context) ([]domain.SyncLog, error) {
	var logs []domain.SyncLog
	if err := s.api.Send(ctx, http.MethodGet, "/sync-logs", nil, &logs); err != nil {
		return nil, err
	}

	sort.SliceStable(logs, func(i, j int) bool {
		ti, oki := logs[i].Time()
		tj, okj := logs[j].Time()
		if oki && okj {
			return ti.After(tj)
		}
		return oki && !okj
	})
	return logs, nil
}

var (
	_ domain.SyncBackend       = (*SyncService)(nil)
	_ domain.SyncLogRepository = (*SyncService)(nil)
)
