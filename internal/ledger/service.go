package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	ListFlux(ctx context.Context) ([]*Flux, error)
	ListTransactions(ctx context.Context) ([]*Transaction, error)
	ListUserTransactions(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RevenueReport(ctx context.Context) (Report, error) {
	flux, err := s.repo.ListFlux(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("listing flux: %w", err)
	}

	return Summarize(flux), nil
}

// Vault is the full accounting view: every flux row and every transaction.
type Vault struct {
	Flux         []*Flux
	Transactions []*Transaction
}

func (s *Service) Vault(ctx context.Context) (*Vault, error) {
	flux, err := s.repo.ListFlux(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing flux: %w", err)
	}

	txs, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return &Vault{Flux: flux, Transactions: txs}, nil
}

func (s *Service) UserTransactions(ctx context.Context, userID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListUserTransactions(ctx, userID)
}
