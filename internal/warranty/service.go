package warranty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sunvolt-erp/sunvolt/internal/leads"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LookupResult pairs a contract with its per-item coverage state.
type LookupResult struct {
	Contract Contract     `json:"contract"`
	Coverage []ItemStatus `json:"coverage"`
}

type ItemStatus struct {
	Item
	Active bool `json:"active"`
}

// Lookup finds all contracts registered under a customer phone and resolves
// each item's warranty state. The phone is validated with the same rules as
// lead capture.
func (s *Service) Lookup(ctx context.Context, phone string) ([]LookupResult, error) {
	if err := leads.ValidatePhone(phone); err != nil {
		return nil, err
	}

	contracts, err := s.repo.FindContractsByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("find contracts: %w", err)
	}

	now := time.Now()
	results := make([]LookupResult, 0, len(contracts))
	for _, contract := range contracts {
		items, err := s.repo.ListItems(ctx, contract.ID)
		if err != nil {
			return nil, fmt.Errorf("list contract items: %w", err)
		}
		coverage := make([]ItemStatus, 0, len(items))
		for _, item := range items {
			coverage = append(coverage, ItemStatus{Item: item, Active: item.Active(now)})
		}
		results = append(results, LookupResult{Contract: contract, Coverage: coverage})
	}
	return results, nil
}
