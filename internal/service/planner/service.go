// Package planner manages the weekly schedule and the focus-area catalog.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
)

type scheduleRepo interface {
	ListWeek(ctx context.Context, userID uuid.UUID) ([]domain.DaySchedule, error)
	SaveWeek(ctx context.Context, userID uuid.UUID, days []domain.DaySchedule) error
	UpsertDay(ctx context.Context, userID uuid.UUID, day domain.DaySchedule) (*domain.DaySchedule, error)
	RemoveDuplicates(ctx context.Context, userID uuid.UUID) (int, error)
}

type settingsRepo interface {
	GetFocusAreas(ctx context.Context, userID uuid.UUID) ([]string, error)
	PutFocusAreas(ctx context.Context, userID uuid.UUID, areas []string) ([]string, error)
}

// Service provides weekly-plan operations.
type Service struct {
	schedules scheduleRepo
	settings  settingsRepo
	log       *slog.Logger
}

// NewService creates a planner service.
func NewService(log *slog.Logger, schedules scheduleRepo, settings settingsRepo) *Service {
	return &Service{
		schedules: schedules,
		settings:  settings,
		log:       log.With("service", "planner"),
	}
}

// WeekPlan is the weekly schedule together with the focus-area catalog.
type WeekPlan struct {
	Days       []domain.DaySchedule
	FocusAreas []string
}

// Week returns the user's weekly plan. A duplicate sweep runs first; its
// failure is logged and ignored.
func (s *Service) Week(ctx context.Context) (WeekPlan, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return WeekPlan{}, domain.ErrUnauthorized
	}

	if _, err := s.schedules.RemoveDuplicates(ctx, userID); err != nil {
		s.log.WarnContext(ctx, "schedule duplicate sweep failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
	}

	days, err := s.schedules.ListWeek(ctx, userID)
	if err != nil {
		return WeekPlan{}, fmt.Errorf("load week: %w", err)
	}

	areas, err := s.settings.GetFocusAreas(ctx, userID)
	if err != nil {
		return WeekPlan{}, fmt.Errorf("load focus areas: %w", err)
	}

	return WeekPlan{Days: days, FocusAreas: areas}, nil
}

// SaveWeek replaces the whole weekly schedule.
func (s *Service) SaveWeek(ctx context.Context, input SaveWeekInput) (WeekPlan, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return WeekPlan{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return WeekPlan{}, err
	}

	if err := s.schedules.SaveWeek(ctx, userID, input.Days); err != nil {
		return WeekPlan{}, err
	}

	s.log.InfoContext(ctx, "week saved",
		slog.String("user_id", userID.String()),
		slog.Int("days", len(input.Days)),
	)
	return s.Week(ctx)
}

// SetDay writes a single day's schedule.
func (s *Service) SetDay(ctx context.Context, input SetDayInput) (*domain.DaySchedule, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	return s.schedules.UpsertDay(ctx, userID, domain.DaySchedule{
		DayOfWeek:  input.DayOfWeek,
		WorkMode:   input.WorkMode,
		FocusAreas: input.FocusAreas,
	})
}

// AddFocusArea appends a new area to the catalog. Duplicates (case
// insensitive) and reserved vocabulary tokens are rejected.
func (s *Service) AddFocusArea(ctx context.Context, name string) ([]string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	name = strings.TrimSpace(name)
	if err := validateFocusArea(name); err != nil {
		return nil, err
	}

	areas, err := s.settings.GetFocusAreas(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, area := range areas {
		if strings.EqualFold(area, name) {
			return nil, domain.NewValidationError("name", "focus area already exists")
		}
	}

	return s.settings.PutFocusAreas(ctx, userID, append(areas, name))
}

// RemoveFocusArea deletes an area from the catalog and strips it from every
// day of the schedule.
func (s *Service) RemoveFocusArea(ctx context.Context, name string) ([]string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	areas, err := s.settings.GetFocusAreas(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := slices.DeleteFunc(slices.Clone(areas), func(a string) bool {
		return strings.EqualFold(a, name)
	})
	if len(kept) == len(areas) {
		return nil, fmt.Errorf("focus area %q: %w", name, domain.ErrNotFound)
	}

	updated, err := s.settings.PutFocusAreas(ctx, userID, kept)
	if err != nil {
		return nil, err
	}

	// Strip the removed area from the schedule so stale tags don't linger.
	days, err := s.schedules.ListWeek(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		filtered := slices.DeleteFunc(slices.Clone(day.FocusAreas), func(a string) bool {
			return strings.EqualFold(a, name)
		})
		if len(filtered) == len(day.FocusAreas) {
			continue
		}
		day.FocusAreas = filtered
		if _, err := s.schedules.UpsertDay(ctx, userID, day); err != nil {
			return nil, fmt.Errorf("strip focus area from %s: %w", day.DayOfWeek, err)
		}
	}

	return updated, nil
}

// RepairDuplicates runs the schedule duplicate sweep. Used by the cleanup
// command.
func (s *Service) RepairDuplicates(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.schedules.RemoveDuplicates(ctx, userID)
}

// validateFocusArea rejects empty names and tokens reserved by the
// work-mode/energy vocabularies (they would be misread on legacy rows).
func validateFocusArea(name string) error {
	if name == "" {
		return domain.NewValidationError("name", "required")
	}
	if len(name) > 50 {
		return domain.NewValidationError("name", "max 50 characters")
	}
	if _, isMode := domain.ParseWorkMode(name); isMode {
		return domain.NewValidationError("name", "reserved word")
	}
	if domain.IsEnergyLevel(name) {
		return domain.NewValidationError("name", "reserved word")
	}
	return nil
}
