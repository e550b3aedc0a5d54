package commission

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	defaultStatsMonths = 6
	maxStatsMonths     = 24
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// History lists an agent's commission entries, newest first.
func (s *Service) History(ctx context.Context, agentID int64, limit, offset int) ([]Entry, int, error) {
	entries, total, err := s.repo.ListByAgent(ctx, agentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list commissions: %w", err)
	}
	return entries, total, nil
}

// Stats returns the agent's monthly commission aggregates for the dashboard.
// Months outside [1, maxStatsMonths] fall back to the default window.
func (s *Service) Stats(ctx context.Context, agentID int64, months int) ([]MonthlyStat, error) {
	months = clampMonths(months)
	stats, err := s.repo.MonthlyStats(ctx, agentID, months)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}
	return stats, nil
}

func clampMonths(months int) int {
	if months < 1 || months > maxStatsMonths {
		return defaultStatsMonths
	}
	return months
}
