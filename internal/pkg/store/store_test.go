package store

import (
	"context"
	"errors"
	"testing"

	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHospital(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	main, err := s.GetHospital(ctx, domain.HospitalMain)
	require.NoError(t, err)
	assert.Equal(t, "Emory University Hospital", main.Name)
	assert.Equal(t, float64(-1260), main.Financials[1].TotalIncome)

	midtown, err := s.GetHospital(ctx, domain.HospitalMidtown)
	require.NoError(t, err)
	assert.Equal(t, 511, midtown.Beds)

	_, err = s.GetHospital(ctx, domain.HospitalID(0))
	assert.True(t, errors.Is(err, constants.ErrUnknownHospital))

	_, err = s.GetHospital(ctx, domain.HospitalID(42))
	assert.True(t, errors.Is(err, constants.ErrUnknownHospital))
}

func TestGetHospital_ReturnsCopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	h, err := s.GetHospital(ctx, domain.HospitalMain)
	require.NoError(t, err)
	h.Specialties[0] = "changed"
	h.Financials[0].TotalIncome = 0

	again, err := s.GetHospital(ctx, domain.HospitalMain)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology & Cardiac Surgery", again.Specialties[0])
	assert.Equal(t, 228.17, again.Financials[0].TotalIncome)
}

func TestListHospitals(t *testing.T) {
	hs, err := NewStore().ListHospitals(context.Background())
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, domain.HospitalMain, hs[0].ID)
	assert.Equal(t, domain.HospitalMidtown, hs[1].ID)
}

// Every series must be aligned to the fiscal years by index.
func TestHospitalTable_YearAlignment(t *testing.T) {
	for id, h := range hospitalTable {
		assert.Equal(t, id, h.ID)
		for i, year := range domain.FiscalYears {
			assert.Equal(t, year, h.Financials[i].Year, "%s financials[%d]", id, i)
			assert.Equal(t, year, h.Labor[i].Year, "%s labor[%d]", id, i)
			assert.Equal(t, h.Departments.TotalCosts[i], h.Labor[i].TotalCost, "%s total cost[%d]", id, i)
		}
	}
}
