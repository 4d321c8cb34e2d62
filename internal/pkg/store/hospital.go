package store

import (
	"context"
	"fmt"

	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/constants"
)

// GetHospital returns a private copy of the record, so callers may not mutate the table.
func (s *store) GetHospital(_ context.Context, id domain.HospitalID) (*domain.Hospital, error) {
	h, ok := s.hospitals[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", constants.ErrUnknownHospital, id)
	}

	return h.Clone(), nil
}

func (s *store) ListHospitals(ctx context.Context) ([]*domain.Hospital, error) {
	res := make([]*domain.Hospital, 0, len(domain.HospitalIDs))
	for _, id := range domain.HospitalIDs {
		h, err := s.GetHospital(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}

	return res, nil
}
