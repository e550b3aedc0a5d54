package leads

import (
	"context"
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, agentID int64, req CreateLeadRequest) (*Lead, error) {
	if err := ValidatePhone(req.Phone); err != nil {
		return nil, err
	}

	lead := Lead{
		AgentID:    agentID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		ProvinceID: req.ProvinceID,
		DistrictID: req.DistrictID,
		WardID:     req.WardID,
		Address:    req.Address,
		Notes:      req.Notes,
	}

	id, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, err
	}

	s.logger.Info("lead created", "lead_id", id, "agent_id", agentID)
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, agentID int64, limit, offset int) ([]Lead, int, error) {
	return s.repo.ListByAgent(ctx, agentID, limit, offset)
}
