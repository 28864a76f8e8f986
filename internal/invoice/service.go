package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Messages returned to the user alongside an Error or a successful delete.
const (
	MsgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	MsgEditInvalid   = "Missing Fields. Failed to Update Invoice."
	MsgCreateFailed  = "Database Error: Failed to Create Invoice."
	MsgEditFailed    = "Database Error: Failed to Update Invoice."
	MsgDeleteFailed  = "Database Error: Failed to Delete Invoice."
	MsgFetchFailed   = "Database Error: Failed to Fetch Invoice."
	MsgListFailed    = "Database Error: Failed to Fetch Invoices."
	MsgNotFound      = "Invoice not found."
	MsgDeleted       = "Invoice deleted successfully"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	ListInvoices(ctx context.Context, filter ListFilter) ([]*Row, error)
	CountInvoices(ctx context.Context, query string) (int, error)

	Version(ctx context.Context) (string, error)
}

// ListFilter selects one page of invoices whose customer, amount, date or status matches Query.
type ListFilter struct {
	Query  string
	Limit  int
	Offset int
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces the clock used to date new invoices.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the form and inserts a new invoice dated today (UTC).
func (s *Service) Create(ctx context.Context, in FormInput) (*Invoice, error) {
	f, fieldErrs := in.validate()
	if fieldErrs != nil {
		return nil, &Error{Kind: KindValidation, Message: MsgCreateInvalid, Fields: fieldErrs}
	}

	inv := &Invoice{
		CustomerID: f.CustomerID,
		Amount:     f.Amount,
		Status:     f.Status,
		Date:       today(s.now()),
	}
	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, storeError(MsgCreateFailed, err)
	}

	return inv, nil
}

// Edit validates the form and overwrites customer, amount and status of invoice id.
// An id that matches no row is not an error.
func (s *Service) Edit(ctx context.Context, id uuid.UUID, in FormInput) error {
	f, fieldErrs := in.validate()
	if fieldErrs != nil {
		return &Error{Kind: KindValidation, Message: MsgEditInvalid, Fields: fieldErrs}
	}

	inv := &Invoice{
		ID:         id,
		CustomerID: f.CustomerID,
		Amount:     f.Amount,
		Status:     f.Status,
	}
	if err := s.repo.UpdateInvoice(ctx, inv); err != nil {
		return storeError(MsgEditFailed, err)
	}

	return nil
}

// Delete removes invoice id. Deleting an id that does not exist succeeds.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	if err := s.repo.DeleteInvoice(ctx, id); err != nil {
		return "", storeError(MsgDeleteFailed, err)
	}

	return MsgDeleted, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: MsgNotFound, Err: err}
		}

		return nil, storeError(MsgFetchFailed, err)
	}

	return inv, nil
}

// Page is one page of the invoices table.
type Page struct {
	Query       string
	CurrentPage int
	TotalPages  int
	Rows        []*Row
}

// Links returns the pagination entries for the page.
func (p *Page) Links() []string {
	return Pagination(p.CurrentPage, p.TotalPages)
}

// List fetches the rows of page (1-based) and the total page count concurrently.
func (s *Service) List(ctx context.Context, query string, page int) (*Page, error) {
	page = max(page, 1)

	var (
		rows  []*Row
		count int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListInvoices(gctx, ListFilter{
			Query:  query,
			Limit:  ItemsPerPage,
			Offset: (page - 1) * ItemsPerPage,
		})

		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.repo.CountInvoices(gctx, query)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, storeError(MsgListFailed, err)
	}

	return &Page{
		Query:       query,
		CurrentPage: page,
		TotalPages:  TotalPages(count),
		Rows:        rows,
	}, nil
}

// Version identifies the current state of every invoice. Views built from invoices are stale once it changes.
func (s *Service) Version(ctx context.Context) (string, error) {
	v, err := s.repo.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("fetching invoices version: %w", err)
	}

	return v, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
