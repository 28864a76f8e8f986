package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// searchCondition matches $1 (a %pattern%) against the customer, amount, date and status of an invoice.
const searchCondition = `
	customers.name ILIKE $1 OR
	customers.email ILIKE $1 OR
	invoices.amount::text ILIKE $1 OR
	invoices.date::text ILIKE $1 OR
	invoices.status ILIKE $1
`

func pattern(query string) string {
	return "%" + query + "%"
}

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.Date,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = $1
	`

	var (
		inv    invoice.Invoice
		status string
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status, &inv.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	inv.Status = invoice.Status(status)

	return &inv, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3, updated_at = now()
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query, inv.CustomerID, inv.Amount, inv.Status, inv.ID)
	if err != nil {
		return fmt.Errorf("updating invoice: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Row, error) {
	query := `
		SELECT invoices.id, invoices.amount, invoices.date, invoices.status,
			customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE ` + searchCondition + `
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, pattern(filter.Query), filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var out []*invoice.Row

	for rows.Next() {
		var (
			r      invoice.Row
			status string
		)

		if err := rows.Scan(&r.ID, &r.Amount, &r.Date, &status, &r.Name, &r.Email, &r.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		r.Status = invoice.Status(status)
		out = append(out, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return out, nil
}

func (s *Store) CountInvoices(ctx context.Context, query string) (int, error) {
	q := `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE ` + searchCondition

	var count int
	if err := s.db.QueryRowContext(ctx, q, pattern(query)).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}

	return count, nil
}

// Version fingerprints the invoices table. It changes whenever a row is inserted, updated or deleted,
// whichever process made the change.
func (s *Store) Version(ctx context.Context) (string, error) {
	query := `
		SELECT COUNT(*), COALESCE(MAX(updated_at), 'epoch'::timestamptz)
		FROM invoices
	`

	var (
		count   int
		updated time.Time
	)

	if err := s.db.QueryRowContext(ctx, query).Scan(&count, &updated); err != nil {
		return "", fmt.Errorf("reading invoices version: %w", err)
	}

	return fmt.Sprintf("%d-%d", count, updated.UnixNano()), nil
}
