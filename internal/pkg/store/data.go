package store

import "github.com/ougirez/hcdash/internal/domain"

// Values are in millions of dollars, taken from the CMS HCRIS cost reports
// for fiscal years 2020-2022.
var hospitalTable = map[domain.HospitalID]domain.Hospital{
	domain.HospitalMain: {
		ID:          domain.HospitalMain,
		Name:        "Emory University Hospital",
		ReportTitle: "Emory University Hospital (Main Campus)",
		Location:    "Atlanta, GA",
		Beds:        751,
		Specialties: []string{
			"Cardiology & Cardiac Surgery",
			"Oncology",
			"Transplantation",
			"Neurosciences",
			"Orthopedics",
		},
		FacilityType: "Tertiary/Quaternary Care, Teaching Hospital",
		Financials: [3]domain.FinancialYear{
			{Year: 2020, TotalIncome: 228.17, NetIncome: 228.17, CostToCharge: 0.2646, MedicaidRevenue: 21.33, MedicaidCharges: 316.79},
			{Year: 2021, TotalIncome: -1260, NetIncome: -1260, CostToCharge: 0.2897, MedicaidRevenue: 18.19, MedicaidCharges: 323.19},
			{Year: 2022, TotalIncome: 93.15, NetIncome: 93.15, CostToCharge: 0.2740, MedicaidRevenue: 43.81, MedicaidCharges: 245.25},
		},
		Departments: domain.DepartmentCosts{
			CharityCare:       [3]float64{30.2, 42.4, 39.6},
			BadDebt:           [3]float64{46.0, 55.0, 61.3},
			OverheadNonSalary: [3]float64{767, 890, 980},
			Depreciation:      [3]float64{40, 40, 40},
			WageRelated:       [3]float64{80, 85, 90},
			TotalCosts:        [3]float64{999, 1150, 1240},
		},
		Labor: [3]domain.LaborYear{
			{Year: 2020, FTEs: 4291.6, ContractLabor: 48.5, TotalCost: 999},
			{Year: 2021, FTEs: 4493.9, ContractLabor: 0, TotalCost: 1150},
			{Year: 2022, FTEs: 3950.5, ContractLabor: 119.9, TotalCost: 1240},
		},
	},
	domain.HospitalMidtown: {
		ID:          domain.HospitalMidtown,
		Name:        "Emory University Hospital Midtown",
		ReportTitle: "Emory University Hospital Midtown",
		Location:    "Atlanta, GA",
		Beds:        511,
		Specialties: []string{
			"Cardiology",
			"Cardiothoracic Surgery",
			"Oncology",
			"Neurosciences",
			"General & Vascular Surgery",
			"Internal Medicine",
			"Urology",
			"Obstetrics & Gynecology",
		},
		FacilityType: "Acute Care, Teaching Hospital",
		Financials: [3]domain.FinancialYear{
			{Year: 2020, TotalIncome: 184.10, NetIncome: 294.58, CostToCharge: 0.2928, MedicaidRevenue: 64.79, MedicaidCharges: 385.12},
			{Year: 2021, TotalIncome: 56.20, NetIncome: 114.39, CostToCharge: 0.3304, MedicaidRevenue: 64.79, MedicaidCharges: 399.52},
			{Year: 2022, TotalIncome: 106.50, NetIncome: 110.28, CostToCharge: 0.3250, MedicaidRevenue: 56.41, MedicaidCharges: 294.94},
		},
		Departments: domain.DepartmentCosts{
			CharityCare:       [3]float64{32.9, 44.8, 44.8},
			BadDebt:           [3]float64{37.5, 65.2, 65.2},
			OverheadNonSalary: [3]float64{983, 1170, 1170},
			Depreciation:      [3]float64{40, 40, 40},
			WageRelated:       [3]float64{66.5, 70.2, 73.8},
			TotalCosts:        [3]float64{1090, 1270, 1270},
		},
		Labor: [3]domain.LaborYear{
			{Year: 2020, FTEs: 3629.4, ContractLabor: 0, TotalCost: 1090},
			{Year: 2021, FTEs: 3697.1, ContractLabor: 0, TotalCost: 1270},
			{Year: 2022, FTEs: 3697.1, ContractLabor: 0, TotalCost: 1270},
		},
	},
}
