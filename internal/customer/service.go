package customer

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	ListOptions(ctx context.Context) ([]Option, error)
	ListSummaries(ctx context.Context, query string) ([]*Summary, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Options returns every customer ordered by name.
func (s *Service) Options(ctx context.Context) ([]Option, error) {
	opts, err := s.repo.ListOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching customers: %w", err)
	}

	return opts, nil
}

// Summaries returns the customers whose name or email matches query, with invoice totals.
func (s *Service) Summaries(ctx context.Context, query string) ([]*Summary, error) {
	sums, err := s.repo.ListSummaries(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetching customer table: %w", err)
	}

	return sums, nil
}
