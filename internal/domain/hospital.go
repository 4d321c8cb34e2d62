package domain

import (
	"fmt"

	"github.com/ougirez/hcdash/internal/pkg/constants"
)

type Year = int

// FiscalYears lists the reporting years every series is aligned to.
var FiscalYears = [3]Year{2020, 2021, 2022}

// HospitalID is a closed set of campuses. The zero value means "nothing selected".
type HospitalID uint8

const (
	HospitalMain HospitalID = iota + 1
	HospitalMidtown
)

// HospitalIDs is the selector order.
var HospitalIDs = []HospitalID{HospitalMain, HospitalMidtown}

func ParseHospitalID(s string) (HospitalID, error) {
	switch s {
	case "emory-main":
		return HospitalMain, nil
	case "emory-midtown":
		return HospitalMidtown, nil
	}
	return 0, fmt.Errorf("%w: %q", constants.ErrUnknownHospital, s)
}

func (id HospitalID) String() string {
	switch id {
	case HospitalMain:
		return "emory-main"
	case HospitalMidtown:
		return "emory-midtown"
	}
	return ""
}

func (id HospitalID) Valid() bool {
	return id == HospitalMain || id == HospitalMidtown
}

func (id HospitalID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *HospitalID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = 0
		return nil
	}
	parsed, err := ParseHospitalID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

type FinancialYear struct {
	Year            Year    `json:"year"`
	TotalIncome     float64 `json:"total_income"`
	NetIncome       float64 `json:"net_income"`
	CostToCharge    float64 `json:"cost_to_charge"`
	MedicaidRevenue float64 `json:"medicaid_revenue"`
	MedicaidCharges float64 `json:"medicaid_charges"`
}

// DepartmentCosts holds series index-aligned to FiscalYears, in millions.
type DepartmentCosts struct {
	CharityCare       [3]float64 `json:"charity_care"`
	BadDebt           [3]float64 `json:"bad_debt"`
	OverheadNonSalary [3]float64 `json:"overhead_non_salary"`
	Depreciation      [3]float64 `json:"depreciation"`
	WageRelated       [3]float64 `json:"wage_related"`
	TotalCosts        [3]float64 `json:"total_costs"`
}

type LaborYear struct {
	Year          Year    `json:"year"`
	FTEs          float64 `json:"ftes"`
	ContractLabor float64 `json:"contract_labor"`
	TotalCost     float64 `json:"total_cost"`
}

// Percentage is contract labor as a share of total cost.
func (l LaborYear) Percentage() float64 {
	if l.TotalCost == 0 {
		return 0
	}
	return l.ContractLabor / l.TotalCost * 100
}

type Hospital struct {
	ID           HospitalID       `json:"id"`
	Name         string           `json:"name"`
	ReportTitle  string           `json:"report_title"`
	Location     string           `json:"location"`
	Beds         int              `json:"beds"`
	Specialties  []string         `json:"specialties"`
	FacilityType string           `json:"facility_type"`
	Financials   [3]FinancialYear `json:"financials"`
	Departments  DepartmentCosts  `json:"departments"`
	Labor        [3]LaborYear     `json:"labor"`
}

// Label is the selector text, "Name - Location".
func (h *Hospital) Label() string {
	return h.Name + " - " + h.Location
}

// Clone returns a copy that shares no mutable memory with h.
func (h *Hospital) Clone() *Hospital {
	c := *h
	c.Specialties = append([]string(nil), h.Specialties...)
	return &c
}
