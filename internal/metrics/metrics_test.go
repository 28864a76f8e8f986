package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

func TestInstrument_UsesRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/dashboard/invoices/{id}/edit", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for range 2 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/invoices/abc/edit", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`ledgerboard_http_requests_total{method="GET",route="/dashboard/invoices/{id}/edit",status="404"} 2`)
}

func TestRecordMutation(t *testing.T) {
	m := metrics.New()

	m.RecordMutation("create", "ok")
	m.RecordMutation("create", "validation")
	m.RecordMutation("create", "ok")
	m.RecordCacheLookup(true)

	n, err := testutil.GatherAndCount(m.Registry, "ledgerboard_invoices_mutations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
