package charts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kapitalpro/invest_bot/internal/service"
)

func TestGeneratePendingOverviewEmptyStats(t *testing.T) {
	generator := NewChartGenerator()

	data, err := generator.GeneratePendingOverview(service.OverviewStats{})

	require.NoError(t, err)
	require.Nil(t, data)
}

func TestGeneratePendingOverviewRendersPNG(t *testing.T) {
	generator := NewChartGenerator()

	data, err := generator.GeneratePendingOverview(service.OverviewStats{
		PendingDeposits:    2,
		PendingWithdrawals: 1,
		TotalPending:       3,
		DepositTotal:       decimal.RequireFromString("150.00"),
		WithdrawalTotal:    decimal.RequireFromString("75.50"),
	})

	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}
