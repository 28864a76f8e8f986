package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
	dashboardhttp "github.com/MrJamesThe3rd/ledgerboard/internal/http/dashboard"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
)

func newServer(t *testing.T, setup func(repo *dashboard.MockRepository)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := dashboard.NewMockRepository(ctrl)
	setup(repo)

	rn, err := render.New()
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/dashboard", dashboardhttp.NewHandler(dashboard.NewService(repo), rn).Routes)

	return r
}

func TestOverview(t *testing.T) {
	srv := newServer(t, func(repo *dashboard.MockRepository) {
		repo.EXPECT().CountInvoices(gomock.Any()).Return(13, nil)
		repo.EXPECT().CountCustomers(gomock.Any()).Return(6, nil)
		repo.EXPECT().InvoiceTotals(gomock.Any()).Return(int64(157095), int64(4500), nil)
		repo.EXPECT().ListRevenue(gomock.Any()).Return([]dashboard.Revenue{{Month: "Jan", Amount: 2000}}, nil)
		repo.EXPECT().LatestInvoices(gomock.Any(), dashboard.LatestLimit).Return([]*dashboard.LatestInvoice{
			{ID: uuid.New(), Amount: 666, Name: "Evil Rabbit", Email: "evil@rabbit.com"},
		}, nil)
	})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, rec.Flushed)
	assert.Contains(t, body, `<template id="cards-content">`)
	assert.Contains(t, body, `<template id="revenue-content">`)
	assert.Contains(t, body, `<template id="latest-invoices-content">`)
	assert.Contains(t, body, "$1,570.95")
	assert.Contains(t, body, "$2K")
	assert.Contains(t, body, "Evil Rabbit")
}

func TestOverview_RegionFailureIsIsolated(t *testing.T) {
	srv := newServer(t, func(repo *dashboard.MockRepository) {
		repo.EXPECT().CountInvoices(gomock.Any()).Return(13, nil)
		repo.EXPECT().CountCustomers(gomock.Any()).Return(6, nil)
		repo.EXPECT().InvoiceTotals(gomock.Any()).Return(int64(1000), int64(0), nil)
		repo.EXPECT().ListRevenue(gomock.Any()).Return(nil, assert.AnError)
		repo.EXPECT().LatestInvoices(gomock.Any(), dashboard.LatestLimit).Return(nil, nil)
	})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, dashboardhttp.MsgRevenueFailed)
	assert.Contains(t, body, "$10.00")
	assert.Contains(t, body, "No data available.")
	assert.Contains(t, body, "</html>")
}
