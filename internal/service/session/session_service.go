package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/hcdash/internal/domain"
	"github.com/ougirez/hcdash/internal/pkg/constants"
	"github.com/ougirez/hcdash/internal/pkg/format"
	"github.com/ougirez/hcdash/internal/pkg/logger"
)

const (
	DefaultDelay = 2 * time.Second
	DefaultTTL   = 30 * time.Minute
)

// Composer builds the dashboard shown once the analysis pause is over.
type Composer interface {
	DashboardFor(ctx context.Context, id domain.HospitalID) (*domain.Dashboard, error)
}

type Option func(*Service)

// WithDelay sets the fixed pause between trigger and results.
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

// WithClock replaces the time source, for tests.
func WithClock(now func() time.Time, after func(time.Duration) <-chan time.Time) Option {
	return func(s *Service) {
		s.now = now
		s.after = after
	}
}

// Service owns every browser session and drives its Collecting -> Busy ->
// Showing -> Collecting flow.
type Service struct {
	composer Composer
	delay    time.Duration
	ttl      time.Duration
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time

	sessionsMx sync.RWMutex
	sessions   map[uuid.UUID]*session

	// in-flight analysis timers
	pending sync.WaitGroup
}

func NewSessionService(composer Composer, opts ...Option) *Service {
	s := &Service{
		composer: composer,
		delay:    DefaultDelay,
		ttl:      DefaultTTL,
		now:      time.Now,
		after:    time.After,
		sessions: make(map[uuid.UUID]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns id if it names a live session, or registers a new one.
// created reports whether a new session was made.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (_ uuid.UUID, created bool) {
	if id != uuid.Nil {
		if _, err := s.get(id); err == nil {
			return id, false
		}
	}

	sess := newSession(uuid.New(), s.now())

	s.sessionsMx.Lock()
	s.sessions[sess.id] = sess
	s.sessionsMx.Unlock()

	logger.Debugf(ctx, "opened session %s", sess.id)
	return sess.id, true
}

func (s *Service) get(id uuid.UUID) (*session, error) {
	s.sessionsMx.RLock()
	sess, ok := s.sessions[id]
	s.sessionsMx.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", constants.ErrSessionNotFound, id)
	}

	sess.mx.Lock()
	sess.lastSeen = s.now()
	sess.mx.Unlock()

	return sess, nil
}

func (s *Service) Snapshot(_ context.Context, id uuid.UUID) (*domain.SessionSnapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	return sess.snapshot(), nil
}

// Present is Snapshot for the HTML shell: the pending notice is handed out once.
// Any successful change to files or selection also drops it.
func (s *Service) Present(_ context.Context, id uuid.UUID) (*domain.SessionSnapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	snap := sess.snapshot()
	sess.notice = ""
	return snap, nil
}

// AddFiles records uploaded file metadata. Dropped files are kept only when
// their declared type is text/csv; browsed files are kept as they are.
func (s *Service) AddFiles(ctx context.Context, id uuid.UUID, source domain.UploadSource, files []domain.UploadedFile) (*domain.SessionSnapshot, error) {
	if len(files) == 0 {
		return nil, constants.ErrNoFiles
	}

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	if sess.state != domain.FlowCollecting {
		return nil, constants.ErrWrongState
	}

	added := 0
	for _, f := range files {
		switch source {
		case domain.UploadSourceDrop:
			if f.ContentType != constants.MIMETypeCSV {
				logger.Debugf(ctx, "dropped file %q ignored, type %q", f.Name, f.ContentType)
				continue
			}
		case domain.UploadSourceBrowse:
			if f.ContentType != constants.MIMETypeCSV {
				logger.Warnf(ctx, "accepting browsed file %q with type %q", f.Name, f.ContentType)
			}
		default:
			return nil, fmt.Errorf("unknown upload source %q", source)
		}

		f.SizeText = format.FileSize(f.Size)
		sess.files = append(sess.files, f)
		added++
	}
	sess.notice = ""

	logger.Infof(ctx, "added %d of %d files from %s", added, len(files), source)
	return sess.snapshot(), nil
}

func (s *Service) RemoveFile(_ context.Context, id uuid.UUID, index int) (*domain.SessionSnapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	if sess.state != domain.FlowCollecting {
		return nil, constants.ErrWrongState
	}
	if index < 0 || index >= len(sess.files) {
		return nil, fmt.Errorf("%w: index %d", constants.ErrFileNotFound, index)
	}

	files := make([]domain.UploadedFile, 0, len(sess.files)-1)
	files = append(files, sess.files[:index]...)
	sess.files = append(files, sess.files[index+1:]...)
	sess.notice = ""

	return sess.snapshot(), nil
}

// SelectHospital stores the selection. The zero HospitalID clears it.
func (s *Service) SelectHospital(ctx context.Context, id uuid.UUID, hospital domain.HospitalID) (*domain.SessionSnapshot, error) {
	if hospital != 0 && !hospital.Valid() {
		return nil, fmt.Errorf("%w: %d", constants.ErrUnknownHospital, hospital)
	}

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	if sess.state != domain.FlowCollecting {
		return nil, constants.ErrWrongState
	}
	sess.hospital = hospital
	sess.notice = ""

	logger.Debugf(ctx, "selected hospital %s", hospital)
	return sess.snapshot(), nil
}

// Trigger starts the analysis pause. The returned channel is closed once the
// session has left Busy. The pause cannot be cancelled: ctx only carries log
// fields into the timer goroutine.
func (s *Service) Trigger(ctx context.Context, id uuid.UUID) (<-chan struct{}, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	switch sess.state {
	case domain.FlowBusy:
		return nil, constants.ErrAnalysisInProgress
	case domain.FlowShowing:
		return nil, constants.ErrWrongState
	}

	if !sess.canAnalyze() {
		sess.notice = constants.ErrMissingInput.Error()
		return nil, constants.ErrMissingInput
	}

	sess.state = domain.FlowBusy
	sess.notice = ""
	sess.landed = make(chan struct{})

	s.pending.Add(1)
	go s.land(context.WithoutCancel(ctx), sess, sess.hospital, sess.landed)

	logger.Infof(ctx, "analysis started for %s, %d files", sess.hospital, len(sess.files))
	return sess.landed, nil
}

func (s *Service) land(ctx context.Context, sess *session, hospital domain.HospitalID, landed chan struct{}) {
	defer s.pending.Done()
	defer close(landed)

	<-s.after(s.delay)

	dashboard, err := s.composer.DashboardFor(ctx, hospital)

	sess.mx.Lock()
	defer sess.mx.Unlock()

	if err != nil {
		logger.Errorf(ctx, "composer.DashboardFor: %s", err.Error())
		sess.state = domain.FlowCollecting
		sess.notice = err.Error()
		return
	}

	sess.state = domain.FlowShowing
	sess.dashboard = dashboard
	logger.Infof(ctx, "analysis ready for %s", hospital)
}

// Landed returns a channel closed when the session is not Busy.
func (s *Service) Landed(_ context.Context, id uuid.UUID) (<-chan struct{}, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	if sess.state == domain.FlowBusy {
		return sess.landed, nil
	}
	done := make(chan struct{})
	close(done)
	return done, nil
}

// Back returns from the results screen. Files and selection are kept.
func (s *Service) Back(_ context.Context, id uuid.UUID) (*domain.SessionSnapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mx.Lock()
	defer sess.mx.Unlock()

	switch sess.state {
	case domain.FlowBusy:
		return nil, constants.ErrAnalysisInProgress
	case domain.FlowShowing:
		sess.state = domain.FlowCollecting
		sess.dashboard = nil
	}

	return sess.snapshot(), nil
}

// Sweep forgets sessions idle for longer than the TTL. Busy sessions stay.
func (s *Service) Sweep(now time.Time) int {
	s.sessionsMx.Lock()
	defer s.sessionsMx.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mx.Lock()
		expired := sess.state != domain.FlowBusy && now.Sub(sess.lastSeen) > s.ttl
		sess.mx.Unlock()

		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps on every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				logger.Infof(ctx, "swept %d idle sessions", n)
			}
		}
	}
}

// Wait blocks until no analysis pause is in flight.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) Len() int {
	s.sessionsMx.RLock()
	defer s.sessionsMx.RUnlock()
	return len(s.sessions)
}
