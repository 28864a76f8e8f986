package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/ledgerboard/internal/dashboard"
)

func TestService_Cards(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(repo *dashboard.MockRepository)
		want    *dashboard.Cards
		wantErr bool
	}{
		{
			name: "all queries succeed",
			setup: func(repo *dashboard.MockRepository) {
				repo.EXPECT().CountInvoices(gomock.Any()).Return(13, nil)
				repo.EXPECT().CountCustomers(gomock.Any()).Return(6, nil)
				repo.EXPECT().InvoiceTotals(gomock.Any()).Return(int64(1000), int64(250), nil)
			},
			want: &dashboard.Cards{InvoiceCount: 13, CustomerCount: 6, TotalPaid: 1000, TotalPending: 250},
		},
		{
			name: "one query fails",
			setup: func(repo *dashboard.MockRepository) {
				repo.EXPECT().CountInvoices(gomock.Any()).Return(13, nil).AnyTimes()
				repo.EXPECT().CountCustomers(gomock.Any()).Return(0, assert.AnError).AnyTimes()
				repo.EXPECT().InvoiceTotals(gomock.Any()).Return(int64(0), int64(0), nil).AnyTimes()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := dashboard.NewMockRepository(ctrl)
			tt.setup(repo)

			got, err := dashboard.NewService(repo).Cards(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, assert.AnError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Revenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dashboard.NewMockRepository(ctrl)
	repo.EXPECT().ListRevenue(gomock.Any()).Return([]dashboard.Revenue{{Month: "Jan", Amount: 3500}}, nil)

	chart, err := dashboard.NewService(repo).Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4000), chart.Top)
	assert.Len(t, chart.Bars, 1)
}

func TestService_LatestInvoices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := dashboard.NewMockRepository(ctrl)
	repo.EXPECT().LatestInvoices(gomock.Any(), dashboard.LatestLimit).Return(nil, assert.AnError)

	_, err := dashboard.NewService(repo).LatestInvoices(context.Background())
	assert.ErrorContains(t, err, "fetching latest invoices")
}
