package store_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/customer/store"
)

func TestStore_ListOptions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT id, name FROM customers ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(a.String(), "Amy Burns").
			AddRow(b.String(), "Balazs Orban"))

	got, err := store.New(db).ListOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []customer.Option{{ID: a, Name: "Amy Burns"}, {ID: b, Name: "Balazs Orban"}}, got)
}

func TestStore_ListSummaries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(`LEFT JOIN invoices ON customers.id = invoices.customer_id[\s\S]+GROUP BY`).
		WithArgs("%amy%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "image_url", "total_invoices", "total_pending", "total_paid",
		}).AddRow(id.String(), "Amy Burns", "amy@burns.com", "/amy.png", 2, int64(0), int64(4290)))

	got, err := store.New(db).ListSummaries(context.Background(), "amy")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Amy Burns", got[0].Name)
	assert.Equal(t, 2, got[0].TotalInvoices)
	assert.Equal(t, int64(4290), got[0].TotalPaid)
	assert.NoError(t, mock.ExpectationsWereMet())
}
