package customer_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerboard/internal/cache"
	"github.com/MrJamesThe3rd/ledgerboard/internal/customer"
	customerhttp "github.com/MrJamesThe3rd/ledgerboard/internal/http/customer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/render"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

func TestList(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(repo *customer.MockRepository)
		wantStatus int
		wantBody   []string
	}{
		{
			name: "renders totals",
			setup: func(repo *customer.MockRepository) {
				repo.EXPECT().ListSummaries(gomock.Any(), "ste").Return([]*customer.Summary{{
					Customer:      customer.Customer{ID: uuid.New(), Name: "Steph Dietz", Email: "steph@dietz.com"},
					TotalInvoices: 2,
					TotalPending:  44800,
					TotalPaid:     0,
				}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{"Steph Dietz", "$448.00", "$0.00", `value="ste"`},
		},
		{
			name: "store failure",
			setup: func(repo *customer.MockRepository) {
				repo.EXPECT().ListSummaries(gomock.Any(), "ste").Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{"Failed to fetch customer table."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := customer.NewMockRepository(ctrl)
			tt.setup(repo)

			rn, err := render.New()
			require.NoError(t, err)

			r := chi.NewRouter()
			r.Route("/dashboard/customers", customerhttp.NewHandler(
				customer.NewService(repo), rn, cache.New(4, time.Minute), metrics.New(),
			).Routes)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/customers?query=ste", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			for _, s := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), s)
			}
		})
	}
}
