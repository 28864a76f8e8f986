package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CountInvoices(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting invoices: %w", err)
	}

	return n, nil
}

func (s *Store) CountCustomers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}

	return n, nil
}

func (s *Store) InvoiceTotals(ctx context.Context) (int64, int64, error) {
	q := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS paid,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending
		FROM invoices
	`

	var paid, pending int64
	if err := s.db.QueryRowContext(ctx, q).Scan(&paid, &pending); err != nil {
		return 0, 0, fmt.Errorf("summing invoice totals: %w", err)
	}

	return paid, pending, nil
}

func (s *Store) ListRevenue(ctx context.Context) ([]dashboard.Revenue, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT month, revenue FROM revenue ORDER BY to_date(month, 'Mon')`)
	if err != nil {
		return nil, fmt.Errorf("listing revenue: %w", err)
	}
	defer rows.Close()

	var out []dashboard.Revenue

	for rows.Next() {
		var r dashboard.Revenue
		if err := rows.Scan(&r.Month, &r.Amount); err != nil {
			return nil, fmt.Errorf("scanning revenue: %w", err)
		}

		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revenue rows: %w", err)
	}

	return out, nil
}

func (s *Store) LatestInvoices(ctx context.Context, limit int) ([]*dashboard.LatestInvoice, error) {
	q := `
		SELECT invoices.id, invoices.amount, customers.name, customers.email, customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		ORDER BY invoices.date DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("listing latest invoices: %w", err)
	}
	defer rows.Close()

	var out []*dashboard.LatestInvoice

	for rows.Next() {
		var li dashboard.LatestInvoice
		if err := rows.Scan(&li.ID, &li.Amount, &li.Name, &li.Email, &li.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning latest invoice: %w", err)
		}

		out = append(out, &li)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating latest invoice rows: %w", err)
	}

	return out, nil
}
