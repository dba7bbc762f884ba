package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/ctxutil"
	"github.com/mindflowhq/mindflow-backend/pkg/dateutil"
)

// Today returns today's log, creating an empty one on first access.
func (s *Service) Today(ctx context.Context) (DayView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DayView{}, domain.ErrUnauthorized
	}

	log, err := s.logs.GetOrCreate(ctx, userID, s.today())
	if err != nil {
		return DayView{}, fmt.Errorf("load today's log: %w", err)
	}
	return s.view(log), nil
}

// Get returns the log for a past or present date. Unlike Today it never
// creates a row.
func (s *Service) Get(ctx context.Context, date string) (DayView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DayView{}, domain.ErrUnauthorized
	}
	if !dateutil.ValidDate(date) {
		return DayView{}, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}

	log, err := s.logs.GetByDate(ctx, userID, date)
	if err != nil {
		return DayView{}, err
	}
	return s.view(log), nil
}

// UpdateEntry applies a partial update to a day's journal content.
func (s *Service) UpdateEntry(ctx context.Context, input UpdateEntryInput) (DayView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DayView{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return DayView{}, err
	}

	log, err := s.logs.UpdateFields(ctx, userID, input.Date, input.params())
	if err != nil {
		return DayView{}, err
	}
	return s.view(log), nil
}

// Week returns the logs of the week containing date (today when empty),
// Monday through Sunday. Days without a log are simply absent.
func (s *Service) Week(ctx context.Context, date string) ([]domain.DailyLog, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	anchor := s.now().In(s.loc)
	if date != "" {
		parsed, err := time.ParseInLocation(dateutil.DateLayout, date, s.loc)
		if err != nil {
			return nil, domain.NewValidationError("date", "must be YYYY-MM-DD")
		}
		anchor = parsed
	}

	from, to := dateutil.WeekRange(anchor, s.loc)
	return s.logs.ListRange(ctx, userID, from, to)
}

// ResetDay wipes all journal content for a date.
func (s *Service) ResetDay(ctx context.Context, date string) (DayView, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return DayView{}, domain.ErrUnauthorized
	}
	if !dateutil.ValidDate(date) {
		return DayView{}, domain.NewValidationError("date", "must be YYYY-MM-DD")
	}

	log, err := s.logs.Reset(ctx, userID, date)
	if err != nil {
		return DayView{}, err
	}

	s.log.InfoContext(ctx, "day reset",
		slog.String("user_id", userID.String()),
		slog.String("date", date),
	)
	return s.view(log), nil
}
