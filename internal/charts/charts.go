package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/kapitalpro/invest_bot/internal/service"
)

// ChartGenerator генерирует графики для панели администратора.
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков.
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GeneratePendingOverview строит столбчатую диаграмму сумм ожидающих
// пополнений и выводов. Возвращает nil, если отображать нечего.
func (g *ChartGenerator) GeneratePendingOverview(stats service.OverviewStats) ([]byte, error) {
	depositTotal, _ := stats.DepositTotal.Float64()
	withdrawalTotal, _ := stats.WithdrawalTotal.Float64()

	if depositTotal == 0 && withdrawalTotal == 0 {
		return nil, nil
	}

	graph := chart.BarChart{
		Title:  "Pending Transactions",
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		BarWidth: 120,
		XAxis: chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("$%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: []chart.Value{
			{
				Value: depositTotal,
				Label: fmt.Sprintf("Deposits (%d)", stats.PendingDeposits),
			},
			{
				Value: withdrawalTotal,
				Label: fmt.Sprintf("Withdrawals (%d)", stats.PendingWithdrawals),
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render pending chart: %w", err)
	}
	return buf.Bytes(), nil
}
