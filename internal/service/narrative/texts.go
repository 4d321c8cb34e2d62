package narrative

import (
	"fmt"

	"github.com/ougirez/hcdash/internal/domain"
)

func unknownHospital(id domain.HospitalID) string {
	panic(fmt.Sprintf("narrative: hospital id %d outside the closed set", id))
}

func summary(id domain.HospitalID) string {
	switch id {
	case domain.HospitalMain:
		return "The main hospital experienced significant financial challenges in 2021 with over $1.2B in negative income, " +
			"likely due to pandemic-related disruptions. Recovery began in 2022, though income remained below 2020 levels. " +
			"Contract labor costs surged to nearly 10% of total costs in 2022."
	case domain.HospitalMidtown:
		return "The Midtown campus demonstrated remarkable resilience, maintaining profitability even when income dipped in 2021. " +
			"The hospital showed stable cost management and relied entirely on full-time employees without contract labor, " +
			"suggesting strong workforce retention."
	}
	return unknownHospital(id)
}

// yearBanners returns the annotations for one (hospital, year) pair. They are
// literal case matches, not thresholds on the numbers.
func yearBanners(id domain.HospitalID, year domain.Year) []domain.Banner {
	var banners []domain.Banner

	if year == 2021 && id == domain.HospitalMain {
		banners = append(banners, domain.Banner{
			Tone:   domain.ToneNegative,
			Title:  "Significant financial downturn",
			Detail: "Over $1.2B in negative income, possibly due to operational losses during the pandemic",
		})
	}

	if year == 2022 {
		switch id {
		case domain.HospitalMain:
			banners = append(banners, domain.Banner{
				Tone:   domain.TonePositive,
				Title:  "Recovery trend observed",
				Detail: "Income recovery, though below 2020 levels. Medicaid revenue nearly doubles.",
			})
		case domain.HospitalMidtown:
			banners = append(banners, domain.Banner{
				Tone:   domain.TonePositive,
				Title:  "Stabilization achieved",
				Detail: "Stable performance with controlled cost management.",
			})
		default:
			unknownHospital(id)
		}
	}

	return banners
}

func laborInsight(id domain.HospitalID) domain.LaborInsight {
	switch id {
	case domain.HospitalMain:
		return domain.LaborInsight{
			Kind:  domain.LaborInsightContractSurge,
			Tone:  domain.ToneWarning,
			Title: "Key Labor Insights",
			Points: []domain.Takeaway{
				{
					Title: "Contract Labor Surge",
					Text: "Sharp increase in reliance on contract labor in 2022, while FTE count decreased — " +
						"possibly due to staffing shortages or shifts post-COVID.",
				},
				{
					Title: "Cost Impact",
					Text: "Contract labor costs surged to nearly 10% of total hospital costs in 2022, " +
						"reflecting pandemic-era staffing challenges and increased labor rates.",
				},
			},
		}
	case domain.HospitalMidtown:
		return domain.LaborInsight{
			Kind:  domain.LaborInsightWorkforceStability,
			Tone:  domain.TonePositive,
			Title: "Workforce Stability",
			Points: []domain.Takeaway{
				{
					Text: "No contract labor reported for Midtown in these years, suggesting full reliance on " +
						"in-house staff and strong workforce retention strategies.",
				},
			},
		}
	}
	unknownHospital(id)
	return domain.LaborInsight{}
}

func contractLaborAlert() *domain.Banner {
	return &domain.Banner{
		Tone:  domain.ToneWarning,
		Title: "Contract Labor Alert",
		Detail: "Contract labor costs surged to nearly 10% of total hospital costs in 2022, while FTE count decreased — " +
			"possibly due to staffing shortages or shifts post-COVID.",
	}
}

func costDrivers() []string {
	return []string{
		"Non-salary overhead: Largest cost category",
		"Charity care: Sustained commitment to uncompensated care",
		"Bad debt: Increasing collection challenges",
	}
}

func staffingPatterns(id domain.HospitalID) []string {
	switch id {
	case domain.HospitalMain:
		return []string{
			"Sharp increase in contract labor in 2022",
			"Decreased FTE count suggests substitution",
			"Pandemic-era staffing challenges evident",
		}
	case domain.HospitalMidtown:
		return []string{
			"Full reliance on in-house staff",
			"Stable workforce retention",
			"Strong workforce management",
		}
	}
	unknownHospital(id)
	return nil
}

func takeaways() []domain.Takeaway {
	return []domain.Takeaway{
		{
			Title: "2021 Challenges",
			Text:  "2021 was a challenging year for the main hospital with a massive drop in income, potentially due to pandemic-related disruptions.",
		},
		{
			Title: "2022 Recovery",
			Text:  "2022 shows signs of recovery at both locations, with stronger Medicaid performance at the main hospital.",
		},
		{
			Title: "Campus Resilience",
			Text:  "The Midtown campus demonstrated resilience, maintaining profitability even when income dipped.",
		},
	}
}

const (
	departmentNoteCharity  = "Reflects sustained commitment to uncompensated care, especially during and post-COVID"
	departmentNoteBadDebt  = "Suggests increasing patient defaults or challenges in collections"
	departmentNoteOverhead = "This was the largest cost category, growing steadily and significantly"
	departmentNoteWage     = "Indicates controlled staffing cost increases"
)
