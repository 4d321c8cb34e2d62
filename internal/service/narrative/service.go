package narrative

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/store"
)

const (
	latest   = 2
	previous = 1
	first    = 0
)

type Service struct {
	store store.Store
}

func NewNarrativeService(store store.Store) *Service {
	return &Service{store: store}
}

// DashboardFor resolves the hospital and composes its dashboard.
func (s *Service) DashboardFor(ctx context.Context, id domain.HospitalID) (*domain.Dashboard, error) {
	h, err := s.store.GetHospital(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetHospital: %w", err)
	}

	return Compose(h), nil
}

// Compose builds the whole view model for one hospital. Every "current vs
// previous year" comparison is made here and nowhere else.
func Compose(h *domain.Hospital) *domain.Dashboard {
	return &domain.Dashboard{
		HospitalID: h.ID,
		Title:      h.ReportTitle,
		Location:   h.Location,
		Summary:    summary(h.ID),
		Stats: domain.HospitalStats{
			Specialties: append([]string(nil), h.Specialties...),
			Beds:        strconv.Itoa(h.Beds),
			Type:        h.FacilityType,
		},
		Financial:   composeFinancial(h),
		Departments: composeDepartments(h),
		Labor:       composeLabor(h),
		Insights: domain.KeyInsights{
			CostDrivers:      costDrivers(),
			StaffingPatterns: staffingPatterns(h.ID),
		},
		Takeaways: takeaways(),
	}
}

func yearLabels() []string {
	labels := make([]string, len(domain.FiscalYears))
	for i, y := range domain.FiscalYears {
		labels[i] = strconv.Itoa(y)
	}
	return labels
}

func series(name, color string, values []float64, formatter func(float64) string) domain.Series {
	formatted := make([]string, len(values))
	for i, v := range values {
		formatted[i] = formatter(v)
	}
	return domain.Series{Name: name, Color: color, Values: values, Formatted: formatted}
}

func signTone(v float64) domain.Tone {
	if v >= 0 {
		return domain.TonePositive
	}
	return domain.ToneNegative
}
