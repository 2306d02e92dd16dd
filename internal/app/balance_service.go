package app

import (
	"context"

	"github.com/google/uuid"
)

type BalanceRepository interface {
	HasBalanceChanges(ctx context.Context, clientID uuid.UUID) (bool, error)
	RefreshProfitForAllClients(ctx context.Context) error
	RefreshProfitForClient(ctx context.Context, clientID uuid.UUID) error
}

// BalanceService zeroes client balances by appending offsetting ADJUSTMENT
// entries; history is never rewritten.
type BalanceService struct {
	repo BalanceRepository
}

func NewBalanceService(repo BalanceRepository) *BalanceService {
	return &BalanceService{repo: repo}
}

func (s *BalanceService) RefreshProfitForAllClients(ctx context.Context) error {
	return s.repo.RefreshProfitForAllClients(ctx)
}

// RefreshProfitForClient is a silent no-op when the client has no ledger
// entries at all.
func (s *BalanceService) RefreshProfitForClient(ctx context.Context, clientID uuid.UUID) error {
	exists, err := s.repo.HasBalanceChanges(ctx, clientID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.repo.RefreshProfitForClient(ctx, clientID)
}
