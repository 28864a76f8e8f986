package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// LatestLimit is how many invoices the overview lists.
const LatestLimit = 5

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dashboard
type Repository interface {
	CountInvoices(ctx context.Context) (int, error)
	CountCustomers(ctx context.Context) (int, error)
	InvoiceTotals(ctx context.Context) (paid, pending int64, err error)
	ListRevenue(ctx context.Context) ([]Revenue, error)
	LatestInvoices(ctx context.Context, limit int) ([]*LatestInvoice, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Cards runs the three card queries concurrently; any failure fails the whole set.
func (s *Service) Cards(ctx context.Context) (*Cards, error) {
	var c Cards

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		c.InvoiceCount, err = s.repo.CountInvoices(gctx)

		return err
	})
	g.Go(func() error {
		var err error
		c.CustomerCount, err = s.repo.CountCustomers(gctx)

		return err
	})
	g.Go(func() error {
		var err error
		c.TotalPaid, c.TotalPending, err = s.repo.InvoiceTotals(gctx)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching card data: %w", err)
	}

	return &c, nil
}

func (s *Service) Revenue(ctx context.Context) (*Chart, error) {
	rev, err := s.repo.ListRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching revenue: %w", err)
	}

	return NewChart(rev), nil
}

func (s *Service) LatestInvoices(ctx context.Context) ([]*LatestInvoice, error) {
	latest, err := s.repo.LatestInvoices(ctx, LatestLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching latest invoices: %w", err)
	}

	return latest, nil
}
