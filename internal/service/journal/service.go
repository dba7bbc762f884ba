// Package journal manages daily log entries and the derived phase states.
// The three phases of a day (morning, midday, evening) are gated by the
// previous phase's completion flag and a wall-clock unlock hour.
package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/dateutil"
)

type logRepo interface {
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLog, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLog, error)
	UpdateFields(ctx context.Context, userID uuid.UUID, date string, params domain.DailyLogUpdateParams) (*domain.DailyLog, error)
	ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DailyLog, error)
	Reset(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLog, error)
}

// Service provides journal operations.
type Service struct {
	logs  logRepo
	gates domain.PhaseGates
	loc   *time.Location
	now   func() time.Time
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock (for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a journal service. gates holds the phase unlock hours
// and loc the journal timezone.
func NewService(log *slog.Logger, logs logRepo, gates domain.PhaseGates, loc *time.Location, opts ...Option) *Service {
	s := &Service{
		logs:  logs,
		gates: gates,
		loc:   loc,
		now:   time.Now,
		log:   log.With("service", "journal"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DayView is a daily log together with its derived phase states.
type DayView struct {
	Log    *domain.DailyLog
	Phases domain.PhaseStates
}

// view derives the phase states for a log at the current wall clock.
func (s *Service) view(log *domain.DailyLog) DayView {
	hour := dateutil.Hour(s.now(), s.loc)
	return DayView{
		Log:    log,
		Phases: domain.TrackPhases(log.Flags(), hour, s.gates),
	}
}

// today returns the current journal date.
func (s *Service) today() string {
	return dateutil.LogDate(s.now(), s.loc)
}
