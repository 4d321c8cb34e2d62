package narrative

import (
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/format"
)

func yearValues(values [3]float64, formatter func(float64) string) []domain.YearValue {
	res := make([]domain.YearValue, len(values))
	for i, v := range values {
		res[i] = domain.YearValue{Year: domain.FiscalYears[i], Value: v, Text: formatter(v)}
	}
	return res
}

func composeDepartments(h *domain.Hospital) domain.DepartmentSection {
	d := h.Departments

	categories := []domain.CostCategory{
		{Key: "charity_care", Title: "Cost of Charity Care", Values: yearValues(d.CharityCare, format.CurrencyLong), Note: departmentNoteCharity},
		{Key: "bad_debt", Title: "Bad Debt Expense", Values: yearValues(d.BadDebt, format.CurrencyLong), Note: departmentNoteBadDebt},
		{Key: "overhead_non_salary", Title: "Overhead Non-Salary Costs", Values: yearValues(d.OverheadNonSalary, format.CurrencyLong), Note: departmentNoteOverhead},
		{Key: "wage_related", Title: "Wage-Related Costs", Values: yearValues(d.WageRelated, format.CurrencyLong), Note: departmentNoteWage},
	}

	return domain.DepartmentSection{
		Categories: categories,
		TotalCosts: yearValues(d.TotalCosts, format.CurrencyLong),
		TopCategories: []domain.CostInsight{
			costInsight("Overhead Non-Salary", d.OverheadNonSalary),
			costInsight("Bad Debt Expense", d.BadDebt),
			costInsight("Cost of Charity Care", d.CharityCare),
		},
		CostTrend: domain.Chart{
			Title:  "Cost Trends (2020-2022)",
			Kind:   "bar",
			Labels: yearLabels(),
			Series: []domain.Series{
				series("Overhead Non-Salary", "#3B82F6", d.OverheadNonSalary[:], format.CurrencyShort),
				series("Wage-Related", "#10B981", d.WageRelated[:], format.CurrencyShort),
				series("Bad Debt", "#EF4444", d.BadDebt[:], format.CurrencyShort),
				series("Charity Care", "#8B5CF6", d.CharityCare[:], format.CurrencyShort),
			},
		},
		Distribution: distribution(d),
	}
}

// costInsight compares the latest year with 2020. Cost growth is bad news,
// so a positive growth gets the negative tone.
func costInsight(name string, values [3]float64) domain.CostInsight {
	growth := format.Growth(values[latest], values[first])

	tone := domain.TonePositive
	if growth >= 0 {
		tone = domain.ToneNegative
	}

	return domain.CostInsight{
		Name:        name,
		CurrentText: format.CurrencyShort(values[latest]),
		Growth:      growth,
		GrowthText:  format.SignedPercent(growth, 1),
		GrowthTone:  tone,
	}
}

func distribution(d domain.DepartmentCosts) []domain.CostSlice {
	slices := []domain.CostSlice{
		{Name: "Overhead Non-Salary", Color: "#3B82F6", Value: d.OverheadNonSalary[latest]},
		{Name: "Wage-Related", Color: "#10B981", Value: d.WageRelated[latest]},
		{Name: "Bad Debt", Color: "#EF4444", Value: d.BadDebt[latest]},
		{Name: "Charity Care", Color: "#8B5CF6", Value: d.CharityCare[latest]},
		{Name: "Depreciation", Color: "#F59E0B", Value: d.Depreciation[latest]},
	}

	var sum float64
	for _, s := range slices {
		sum += s.Value
	}
	for i := range slices {
		if sum > 0 {
			slices[i].Share = slices[i].Value / sum * 100
		}
		slices[i].ShareText = format.Percent(slices[i].Share, 1)
	}

	return slices
}
