package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/hcdash/internal/domain"
)

type session struct {
	mx sync.Mutex

	id        uuid.UUID
	state     domain.FlowState
	files     []domain.UploadedFile
	hospital  domain.HospitalID
	dashboard *domain.Dashboard
	notice    string
	lastSeen  time.Time

	// closed when the current Busy period ends
	landed chan struct{}
}

func newSession(id uuid.UUID, now time.Time) *session {
	return &session{
		id:       id,
		state:    domain.FlowCollecting,
		lastSeen: now,
	}
}

func (s *session) canAnalyze() bool {
	return len(s.files) > 0 && s.hospital.Valid()
}

// snapshot must be called with mx held. The dashboard is never mutated after
// composition, so sharing the pointer is safe.
func (s *session) snapshot() *domain.SessionSnapshot {
	return &domain.SessionSnapshot{
		ID:         s.id,
		State:      s.state,
		Files:      append([]domain.UploadedFile{}, s.files...),
		HospitalID: s.hospital,
		CanAnalyze: s.state == domain.FlowCollecting && s.canAnalyze(),
		Dashboard:  s.dashboard,
		Notice:     s.notice,
	}
}
