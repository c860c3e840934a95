package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mmcdole/loofah/internal/domain"
)

// StatsService reads aggregate counters. There is no caching: callers
// re-invoke GetStats when they want fresh numbers.
type StatsService struct {
	api    domain.Requester
	logger *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(api domain.Requester, logger *slog.Logger) *StatsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsService{api: api, logger: logger}
}

// GetStats returns the current snapshot
func (s *StatsService) GetStats(ctx context.Context) (domain.StatsSnapshot, error) {
	var stats domain.StatsSnapshot
	if err := s.api.Send(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return domain.StatsSnapshot{}, err
	}
	if stats.TypeDistribution == nil {
		stats.TypeDistribution = map[string]int{}
	}
	s.logger.Debug("loaded stats", "total", stats.Total, "today", stats.TodayNew)
	return stats, nil
}

var _ domain.StatsRepository = (*StatsService)(nil)
