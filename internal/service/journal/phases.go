package journal

import (
	"context"
	"log/slog"
	"slices"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
)

// CompletePhase marks a phase complete. Only an active phase can be
// completed: completing a locked phase fails, completing an already
// complete phase is a no-op.
func (s *Service) CompletePhase(ctx context.Context, input PhaseInput) (DayView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DayView{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return DayView{}, err
	}

	log, err := s.logs.GetOrCreate(ctx, userID, input.Date)
	if err != nil {
		return DayView{}, err
	}

	current := s.view(log)
	switch current.Phases.For(input.Phase) {
	case domain.PhaseComplete:
		return current, nil
	case domain.PhaseLocked:
		return DayView{}, domain.NewValidationError("phase", "phase is still locked")
	}

	flag := true
	params := domain.DailyLogUpdateParams{}
	switch input.Phase {
	case domain.PhaseMorning:
		params.MorningComplete = &flag
	case domain.PhaseMidday:
		params.MiddayComplete = &flag
	case domain.PhaseEvening:
		params.EveningComplete = &flag
	}

	log, err = s.logs.UpdateFields(ctx, userID, input.Date, params)
	if err != nil {
		return DayView{}, err
	}

	s.log.InfoContext(ctx, "phase completed",
		slog.String("user_id", userID.String()),
		slog.String("date", input.Date),
		slog.String("phase", string(input.Phase)),
	)
	return s.view(log), nil
}

// ReopenPhase clears a phase's completion flag. Reopening is allowed at any
// time with no guard.
func (s *Service) ReopenPhase(ctx context.Context, input PhaseInput) (DayView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DayView{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return DayView{}, err
	}

	flag := false
	params := domain.DailyLogUpdateParams{}
	switch input.Phase {
	case domain.PhaseMorning:
		params.MorningComplete = &flag
	case domain.PhaseMidday:
		params.MiddayComplete = &flag
	case domain.PhaseEvening:
		params.EveningComplete = &flag
	}

	log, err := s.logs.UpdateFields(ctx, userID, input.Date, params)
	if err != nil {
		return DayView{}, err
	}
	return s.view(log), nil
}

// ToggleActionItem checks or unchecks one action item of a morning or
// midday insight by its index.
func (s *Service) ToggleActionItem(ctx context.Context, input ToggleActionItemInput) (DayView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DayView{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return DayView{}, err
	}

	log, err := s.logs.GetOrCreate(ctx, userID, input.Date)
	if err != nil {
		return DayView{}, err
	}

	items := log.CompletedActionItems
	switch input.Phase {
	case domain.PhaseMidday:
		items.Midday = toggleIndex(items.Midday, input.Index)
	default:
		items.Morning = toggleIndex(items.Morning, input.Index)
	}

	log, err = s.logs.UpdateFields(ctx, userID, input.Date, domain.DailyLogUpdateParams{
		CompletedActionItems: &items,
	})
	if err != nil {
		return DayView{}, err
	}
	return s.view(log), nil
}

// toggleIndex adds idx to the set, or removes it when already present.
func toggleIndex(indices []int, idx int) []int {
	if i := slices.Index(indices, idx); i >= 0 {
		return slices.Delete(slices.Clone(indices), i, i+1)
	}
	out := slices.Clone(indices)
	return append(out, idx)
}
