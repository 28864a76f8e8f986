package invoice_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	invoicehttp "github.com/MrJamesThe3rd/ledgerboard/internal/http/invoice"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerboard/internal/invoice"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

var (
	customerID = uuid.MustParse("3958dc9e-712f-4377-85e9-fec4b6a6442a")
	invoiceID  = uuid.MustParse("cc27c14a-0acf-4f4a-a6c9-d45682c144b9")
)

type fixture struct {
	srv       http.Handler
	invoices  *invoice.MockRepository
	customers *customer.MockRepository
	views     *cache.Views
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		invoices:  invoice.NewMockRepository(ctrl),
		customers: customer.NewMockRepository(ctrl),
		views:     cache.New(16, time.Minute),
	}

	rn, err := render.New()
	require.NoError(t, err)

	m := metrics.New()
	invSvc := invoice.NewService(f.invoices, invoice.WithClock(func() time.Time {
		return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	}))

	r := chi.NewRouter()
	r.Route("/dashboard/invoices", invoicehttp.NewHandler(invSvc, customer.NewService(f.customers), rn, f.views, m).Routes)
	r.Route("/api/v1/invoices", invoicehttp.NewAPIHandler(invSvc, f.views, m).Routes)

	f.srv = r

	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)

	return rec
}

func postForm(target string, v url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func (f *fixture) expectCustomers() {
	f.customers.EXPECT().ListOptions(gomock.Any()).Return([]customer.Option{
		{ID: customerID, Name: "Lee Robinson"},
	}, nil)
}

func (f *fixture) expectList(rows []*invoice.Row, count int) {
	f.invoices.EXPECT().ListInvoices(gomock.Any(), gomock.Any()).Return(rows, nil)
	f.invoices.EXPECT().CountInvoices(gomock.Any(), gomock.Any()).Return(count, nil)
}

func TestCreate(t *testing.T) {
	t.Run("valid form redirects to the list and invalidates it", func(t *testing.T) {
		f := newFixture(t)
		f.views.Set("/dashboard/invoices?page=1", cache.Entry{Body: []byte("stale")})

		f.invoices.EXPECT().CreateInvoice(gomock.Any(), &invoice.Invoice{
			CustomerID: customerID,
			Amount:     4500,
			Status:     invoice.StatusPending,
			Date:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		}).Return(nil)

		rec := f.do(postForm("/dashboard/invoices", url.Values{
			"customerId": {customerID.String()},
			"amount":     {"45.00"},
			"status":     {"pending"},
		}))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))
		assert.Zero(t, f.views.Len())
	})

	t.Run("invalid form re-renders with field errors", func(t *testing.T) {
		f := newFixture(t)
		f.expectCustomers()

		rec := f.do(postForm("/dashboard/invoices", url.Values{"amount": {"0"}}))

		body := rec.Body.String()
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, body, invoice.MsgCreateInvalid)
		assert.Contains(t, body, "Please select a customer.")
		assert.Contains(t, body, "Please enter an amount greater than $0.")
		assert.Contains(t, body, "Please select an invoice status.")
	})

	t.Run("store failure shows the database message", func(t *testing.T) {
		f := newFixture(t)
		f.invoices.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(assert.AnError)
		f.expectCustomers()

		rec := f.do(postForm("/dashboard/invoices", url.Values{
			"customerId": {customerID.String()},
			"amount":     {"12.5"},
			"status":     {"paid"},
		}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), invoice.MsgCreateFailed)
		assert.Contains(t, rec.Body.String(), `value="12.5"`)
	})
}

func TestEditPage(t *testing.T) {
	t.Run("renders the pre-populated form", func(t *testing.T) {
		f := newFixture(t)
		f.invoices.EXPECT().GetInvoice(gomock.Any(), invoiceID).Return(&invoice.Invoice{
			ID:         invoiceID,
			CustomerID: customerID,
			Amount:     15795,
			Status:     invoice.StatusPaid,
		}, nil)
		f.expectCustomers()

		rec := f.do(httptest.NewRequest(http.MethodGet, "/dashboard/invoices/"+invoiceID.String()+"/edit", nil))

		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, `value="157.95"`)
		assert.Contains(t, body, `<option value="`+customerID.String()+`" selected>Lee Robinson</option>`)
		assert.Contains(t, body, `value="paid" checked`)
		assert.Contains(t, body, `action="/dashboard/invoices/`+invoiceID.String()+`/edit"`)
	})

	t.Run("missing invoice is not found", func(t *testing.T) {
		f := newFixture(t)
		f.invoices.EXPECT().GetInvoice(gomock.Any(), invoiceID).Return(nil, invoice.ErrNotFound)
		f.customers.EXPECT().ListOptions(gomock.Any()).Return(nil, nil).AnyTimes()

		rec := f.do(httptest.NewRequest(http.MethodGet, "/dashboard/invoices/"+invoiceID.String()+"/edit", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "404 Not Found")
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/dashboard/invoices/not-a-uuid/edit", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("customer fetch failure fails the page", func(t *testing.T) {
		f := newFixture(t)
		f.invoices.EXPECT().GetInvoice(gomock.Any(), invoiceID).Return(&invoice.Invoice{ID: invoiceID}, nil).AnyTimes()
		f.customers.EXPECT().ListOptions(gomock.Any()).Return(nil, assert.AnError)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/dashboard/invoices/"+invoiceID.String()+"/edit", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong!")
	})
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	f.invoices.EXPECT().UpdateInvoice(gomock.Any(), &invoice.Invoice{
		ID:         invoiceID,
		CustomerID: customerID,
		Amount:     10001,
		Status:     invoice.StatusPaid,
	}).Return(nil)

	rec := f.do(postForm("/dashboard/invoices/"+invoiceID.String()+"/edit", url.Values{
		"customerId": {customerID.String()},
		"amount":     {"100.01"},
		"status":     {"paid"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))
}

func TestEdit_Invalid(t *testing.T) {
	f := newFixture(t)
	f.expectCustomers()

	rec := f.do(postForm("/dashboard/invoices/"+invoiceID.String()+"/edit", url.Values{
		"customerId": {customerID.String()},
		"amount":     {"-3"},
		"status":     {"overdue"},
	}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), invoice.MsgEditInvalid)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	f.views.Set("/dashboard/customers", cache.Entry{Body: []byte("stale")})

	f.invoices.EXPECT().DeleteInvoice(gomock.Any(), invoiceID).Return(nil)
	f.invoices.EXPECT().ListInvoices(gomock.Any(), invoice.ListFilter{Query: "lee", Limit: 6, Offset: 6}).Return(nil, nil)
	f.invoices.EXPECT().CountInvoices(gomock.Any(), "lee").Return(7, nil)

	rec := f.do(postForm("/dashboard/invoices/"+invoiceID.String()+"/delete", url.Values{
		"query": {"lee"},
		"page":  {"2"},
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), invoice.MsgDeleted)
	assert.Zero(t, f.views.Len())
}

func TestList_IsCached(t *testing.T) {
	f := newFixture(t)
	f.expectList([]*invoice.Row{{
		ID:     invoiceID,
		Amount: 20348,
		Date:   time.Date(2022, 11, 14, 0, 0, 0, 0, time.UTC),
		Status: invoice.StatusPending,
		Name:   "Delba de Oliveira",
	}}, 1)

	first := f.do(httptest.NewRequest(http.MethodGet, "/dashboard/invoices?query=delba", nil))
	second := f.do(httptest.NewRequest(http.MethodGet, "/dashboard/invoices?query=delba", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "$203.48")
	assert.Contains(t, first.Body.String(), "Nov 14, 2022")
	assert.Contains(t, first.Body.String(), "Pending")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

// Invoices written by another client (the terminal UI shares the database, not this cache)
// are visible on the next list request.
func TestList_PicksUpWritesFromOtherClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	invoices := invoice.NewMockRepository(ctrl)
	customers := customer.NewMockRepository(ctrl)

	rn, err := render.New()
	require.NoError(t, err)

	invSvc := invoice.NewService(invoices)
	views := cache.New(16, time.Hour, cache.WithVersion(invSvc.Version))

	r := chi.NewRouter()
	r.Route("/dashboard/invoices", invoicehttp.NewHandler(invSvc, customer.NewService(customers), rn, views, metrics.New()).Routes)

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil))

		return rec
	}

	row := func(name string) []*invoice.Row {
		return []*invoice.Row{{ID: invoiceID, Amount: 4500, Status: invoice.StatusPaid, Name: name}}
	}

	gomock.InOrder(
		invoices.EXPECT().Version(gomock.Any()).Return("1-100", nil).Times(2),
		invoices.EXPECT().Version(gomock.Any()).Return("1-200", nil),
	)
	invoices.EXPECT().ListInvoices(gomock.Any(), gomock.Any()).Return(row("Lee Robinson"), nil)
	invoices.EXPECT().ListInvoices(gomock.Any(), gomock.Any()).Return(row("Delba de Oliveira"), nil)
	invoices.EXPECT().CountInvoices(gomock.Any(), gomock.Any()).Return(1, nil).Times(2)

	first := get()
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Contains(t, first.Body.String(), "Lee Robinson")

	assert.Equal(t, "HIT", get().Header().Get("X-Cache"))

	third := get()
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Contains(t, third.Body.String(), "Delba de Oliveira")
}
