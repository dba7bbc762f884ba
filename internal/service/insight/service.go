// Package insight orchestrates insight generation and follow-up chat. It
// assembles the generation context (active challenges, wisdom sources,
// today's schedule, the user's situation), calls the gateway, and persists
// the returned payload on the daily log. Gateway failures leave any
// previously stored insight untouched.
package insight

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/aigateway"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

type gateway interface {
	GenerateInsight(ctx context.Context, req aigateway.InsightRequest) (json.RawMessage, *domain.Insight, error)
	FollowUp(ctx context.Context, req aigateway.FollowUpRequest) (string, error)
}

type logRepo interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLog, error)
	UpdateFields(ctx context.Context, userID uuid.UUID, date string, params domain.DailyLogUpdateParams) (*domain.DailyLog, error)
}

type challengeRepo interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Challenge, error)
}

type wisdomRepo interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.WisdomSource, error)
}

type scheduleRepo interface {
	ListWeek(ctx context.Context, userID uuid.UUID) ([]domain.DaySchedule, error)
}

// Service provides insight generation and follow-up chat.
type Service struct {
	gw         gateway
	logs       logRepo
	challenges challengeRepo
	wisdom     wisdomRepo
	schedules  scheduleRepo
	loc        *time.Location
	now        func() time.Time
	log        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock (for tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates an insight service.
func NewService(
	log *slog.Logger,
	gw gateway,
	logs logRepo,
	challenges challengeRepo,
	wisdom wisdomRepo,
	schedules scheduleRepo,
	loc *time.Location,
	opts ...Option,
) *Service {
	s := &Service{
		gw:         gw,
		logs:       logs,
		challenges: challenges,
		wisdom:     wisdom,
		schedules:  schedules,
		loc:        loc,
		now:        time.Now,
		log:        log.With("service", "insight"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
