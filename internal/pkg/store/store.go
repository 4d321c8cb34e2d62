package store

import (
	"context"

	"github.com/ougirez/hcdash/internal/domain"
)

// Store resolves hospitals from the compiled-in HCRIS extract.
type Store interface {
	GetHospital(ctx context.Context, id domain.HospitalID) (*domain.Hospital, error)
	ListHospitals(ctx context.Context) ([]*domain.Hospital, error)
}

type store struct {
	hospitals map[domain.HospitalID]domain.Hospital
}

func NewStore() Store {
	return &store{hospitals: hospitalTable}
}
