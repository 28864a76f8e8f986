package store_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard/store"
)

func TestStore_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM invoices`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

	s := store.New(db)

	n, err := s.CountInvoices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	n, err = s.CountCustomers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InvoiceTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SUM\(CASE WHEN status = 'paid'`).
		WillReturnRows(sqlmock.NewRows([]string{"paid", "pending"}).AddRow(int64(128000), int64(55420)))

	paid, pending, err := store.New(db).InvoiceTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(128000), paid)
	assert.Equal(t, int64(55420), pending)
}

func TestStore_ListRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT month, revenue FROM revenue ORDER BY to_date\(month, 'Mon'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue"}).
			AddRow("Jan", int64(2000)).
			AddRow("Feb", int64(1800)))

	got, err := store.New(db).ListRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dashboard.Revenue{{Month: "Jan", Amount: 2000}, {Month: "Feb", Amount: 1800}}, got)
}

func TestStore_LatestInvoices(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(`ORDER BY invoices.date DESC\s+LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "amount", "name", "email", "image_url"}).
			AddRow(id.String(), int64(666), "Delba de Oliveira", "delba@oliveira.com", "/delba.png"))

	got, err := store.New(db).LatestInvoices(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, int64(666), got[0].Amount)
}

func TestStore_LatestInvoices_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM invoices`).WillReturnError(assert.AnError)

	_, err = store.New(db).LatestInvoices(context.Background(), 5)
	assert.ErrorIs(t, err, assert.AnError)
}
