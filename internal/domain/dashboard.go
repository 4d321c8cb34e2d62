package domain

// Tone drives the colour of a card or banner.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
	ToneWarning  Tone = "warning"
)

type Banner struct {
	Tone   Tone   `json:"tone"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type YearValue struct {
	Year  Year    `json:"year"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

type Series struct {
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Values    []float64 `json:"values"`
	Formatted []string  `json:"formatted"`
}

type Chart struct {
	Title  string   `json:"title"`
	Kind   string   `json:"kind"` // line, bar or pie
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Dashboard is the complete, immutable view of one hospital.
type Dashboard struct {
	HospitalID  HospitalID        `json:"hospital_id"`
	Title       string            `json:"title"`
	Location    string            `json:"location"`
	Summary     string            `json:"summary"`
	Stats       HospitalStats     `json:"stats"`
	Financial   FinancialSection  `json:"financial"`
	Departments DepartmentSection `json:"departments"`
	Labor       LaborSection      `json:"labor"`
	Insights    KeyInsights       `json:"insights"`
	Takeaways   []Takeaway        `json:"takeaways"`
}

type HospitalStats struct {
	Specialties []string `json:"specialties"`
	Beds        string   `json:"beds"`
	Type        string   `json:"type"`
}

type FinancialSection struct {
	Years         []FinancialRow      `json:"years"`
	Highlights    FinancialHighlights `json:"highlights"`
	IncomeTrend   Chart               `json:"income_trend"`
	MedicaidChart Chart               `json:"medicaid_chart"`
}

type FinancialRow struct {
	FinancialYear
	TotalIncomeText     string   `json:"total_income_text"`
	NetIncomeText       string   `json:"net_income_text"`
	CostToChargeText    string   `json:"cost_to_charge_text"`
	MedicaidRevenueText string   `json:"medicaid_revenue_text"`
	MedicaidChargesText string   `json:"medicaid_charges_text"`
	TotalIncomeTone     Tone     `json:"total_income_tone"`
	NetIncomeTone       Tone     `json:"net_income_tone"`
	Banners             []Banner `json:"banners,omitempty"`
}

type FinancialHighlights struct {
	LatestYear          Year    `json:"latest_year"`
	PreviousYear        Year    `json:"previous_year"`
	TotalIncomeText     string  `json:"total_income_text"`
	TotalIncomeTone     Tone    `json:"total_income_tone"`
	IncomeChange        float64 `json:"income_change"`
	IncomeChangeTone    Tone    `json:"income_change_tone"`
	IncomeChangeText    string  `json:"income_change_text"`
	CostToChargeText    string  `json:"cost_to_charge_text"`
	CostToChargeTrend   string  `json:"cost_to_charge_trend"`
	MedicaidRevenueText string  `json:"medicaid_revenue_text"`
}

type DepartmentSection struct {
	Categories    []CostCategory `json:"categories"`
	TotalCosts    []YearValue    `json:"total_costs"`
	TopCategories []CostInsight  `json:"top_categories"`
	CostTrend     Chart          `json:"cost_trend"`
	Distribution  []CostSlice    `json:"distribution"`
}

type CostCategory struct {
	Key    string      `json:"key"`
	Title  string      `json:"title"`
	Values []YearValue `json:"values"`
	Note   string      `json:"note"`
}

type CostInsight struct {
	Name        string  `json:"name"`
	CurrentText string  `json:"current_text"`
	Growth      float64 `json:"growth"`
	GrowthText  string  `json:"growth_text"`
	GrowthTone  Tone    `json:"growth_tone"`
}

type CostSlice struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Value     float64 `json:"value"`
	Share     float64 `json:"share"`
	ShareText string  `json:"share_text"`
}

type LaborSection struct {
	Years              []LaborRow      `json:"years"`
	Highlights         LaborHighlights `json:"highlights"`
	ContractLaborAlert *Banner         `json:"contract_labor_alert,omitempty"`
	Insight            LaborInsight    `json:"insight"`
	FTETrend           Chart           `json:"fte_trend"`
	ContractChart      Chart           `json:"contract_chart"`
}

type LaborRow struct {
	LaborYear
	Percentage        float64 `json:"percentage"`
	FTEsText          string  `json:"ftes_text"`
	ContractLaborText string  `json:"contract_labor_text"`
	PercentageText    string  `json:"percentage_text"`
	TotalCostText     string  `json:"total_cost_text"`
}

type LaborHighlights struct {
	FTEsText          string `json:"ftes_text"`
	FTEChangeText     string `json:"fte_change_text"`
	FTEChangeTone     Tone   `json:"fte_change_tone"`
	ContractLaborText string `json:"contract_labor_text"`
	ContractShareText string `json:"contract_share_text"`
}

type LaborInsightKind string

const (
	LaborInsightContractSurge      LaborInsightKind = "contract_surge"
	LaborInsightWorkforceStability LaborInsightKind = "workforce_stability"
)

type LaborInsight struct {
	Kind   LaborInsightKind `json:"kind"`
	Tone   Tone             `json:"tone"`
	Title  string           `json:"title"`
	Points []Takeaway       `json:"points"`
}

type KeyInsights struct {
	CostDrivers      []string `json:"cost_drivers"`
	StaffingPatterns []string `json:"staffing_patterns"`
}

type Takeaway struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
