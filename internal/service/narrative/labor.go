package narrative

import (
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/format"
)

func composeLabor(h *domain.Hospital) domain.LaborSection {
	rows := make([]domain.LaborRow, 0, len(h.Labor))
	ftes := make([]float64, 0, len(h.Labor))
	contract := make([]float64, 0, len(h.Labor))

	hasContractLabor := false
	for _, ly := range h.Labor {
		pct := ly.Percentage()
		rows = append(rows, domain.LaborRow{
			LaborYear:         ly,
			Percentage:        pct,
			FTEsText:          format.Count(ly.FTEs),
			ContractLaborText: format.CurrencyLong(ly.ContractLabor),
			PercentageText:    format.Percent(pct, 2),
			TotalCostText:     format.CurrencyLong(ly.TotalCost),
		})
		ftes = append(ftes, ly.FTEs)
		contract = append(contract, ly.ContractLabor)

		if ly.ContractLabor > 0 {
			hasContractLabor = true
		}
	}

	section := domain.LaborSection{
		Years:      rows,
		Highlights: laborHighlights(h.Labor[latest], h.Labor[previous]),
		Insight:    laborInsight(h.ID),
		FTETrend: domain.Chart{
			Title:  "FTE Count Trends",
			Kind:   "line",
			Labels: yearLabels(),
			Series: []domain.Series{series("Full-Time Employees", "#3B82F6", ftes, format.Count)},
		},
		ContractChart: domain.Chart{
			Title:  "Contract Labor vs FTE Costs",
			Kind:   "bar",
			Labels: yearLabels(),
			Series: []domain.Series{series("Contract Labor", "#F59E0B", contract, format.CurrencyShort)},
		},
	}
	if hasContractLabor {
		section.ContractLaborAlert = contractLaborAlert()
	}

	return section
}

func laborHighlights(cur, prev domain.LaborYear) domain.LaborHighlights {
	change := cur.FTEs - prev.FTEs

	return domain.LaborHighlights{
		FTEsText:          format.Count(cur.FTEs),
		FTEChangeText:     format.SignedCount(change) + " vs " + yearLabels()[previous],
		FTEChangeTone:     signTone(change),
		ContractLaborText: format.CurrencyShort(cur.ContractLabor),
		ContractShareText: format.Percent(cur.Percentage(), 1) + " of total costs",
	}
}
