package narrative

import (
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/format"
)

func composeFinancial(h *domain.Hospital) domain.FinancialSection {
	rows := make([]domain.FinancialRow, 0, len(h.Financials))
	for _, fy := range h.Financials {
		rows = append(rows, domain.FinancialRow{
			FinancialYear:       fy,
			TotalIncomeText:     format.CurrencyLong(fy.TotalIncome),
			NetIncomeText:       format.CurrencyLong(fy.NetIncome),
			CostToChargeText:    format.Ratio(fy.CostToCharge, 4),
			MedicaidRevenueText: format.CurrencyLong(fy.MedicaidRevenue),
			MedicaidChargesText: format.CurrencyLong(fy.MedicaidCharges),
			TotalIncomeTone:     signTone(fy.TotalIncome),
			NetIncomeTone:       signTone(fy.NetIncome),
			Banners:             yearBanners(h.ID, fy.Year),
		})
	}

	var (
		total    = make([]float64, len(h.Financials))
		net      = make([]float64, len(h.Financials))
		medicaid = make([]float64, len(h.Financials))
	)
	for i, fy := range h.Financials {
		total[i] = fy.TotalIncome
		net[i] = fy.NetIncome
		medicaid[i] = fy.MedicaidRevenue
	}

	return domain.FinancialSection{
		Years:      rows,
		Highlights: financialHighlights(h.Financials[latest], h.Financials[previous]),
		IncomeTrend: domain.Chart{
			Title:  "Income Trends",
			Kind:   "line",
			Labels: yearLabels(),
			Series: []domain.Series{
				series("Total Income", "#3B82F6", total, format.CurrencyShort),
				series("Net Income", "#10B981", net, format.CurrencyShort),
			},
		},
		MedicaidChart: domain.Chart{
			Title:  "Medicaid Revenue by Year",
			Kind:   "bar",
			Labels: yearLabels(),
			Series: []domain.Series{
				series("Medicaid Revenue", "#8B5CF6", medicaid, format.CurrencyShort),
			},
		},
	}
}

func financialHighlights(cur, prev domain.FinancialYear) domain.FinancialHighlights {
	change := format.PercentDelta(cur.TotalIncome, prev.TotalIncome)

	changeAbs := change
	if changeAbs < 0 {
		changeAbs = -changeAbs
	}

	trend := "Decreased"
	if cur.CostToCharge > prev.CostToCharge {
		trend = "Increased"
	}

	return domain.FinancialHighlights{
		LatestYear:          cur.Year,
		PreviousYear:        prev.Year,
		TotalIncomeText:     format.CurrencyShort(cur.TotalIncome),
		TotalIncomeTone:     signTone(cur.TotalIncome),
		IncomeChange:        change,
		IncomeChangeTone:    signTone(change),
		IncomeChangeText:    format.Percent(changeAbs, 1) + " vs " + yearLabels()[previous],
		CostToChargeText:    format.Ratio(cur.CostToCharge, 3),
		CostToChargeTrend:   trend + " from " + format.Ratio(prev.CostToCharge, 3),
		MedicaidRevenueText: format.CurrencyShort(cur.MedicaidRevenue),
	}
}
