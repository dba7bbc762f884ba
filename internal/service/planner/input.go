package planner

import (
	"fmt"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

// SaveWeekInput holds a full weekly schedule.
type SaveWeekInput struct {
	Days []domain.DaySchedule
}

// Validate checks all fields and collects all errors.
func (i SaveWeekInput) Validate() error {
	var errs []domain.FieldError

	seen := make(map[string]struct{}, len(i.Days))
	for idx, day := range i.Days {
		field := fmt.Sprintf("days[%d]", idx)
		if !domain.IsDayOfWeek(day.DayOfWeek) {
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("unknown day %q", day.DayOfWeek)})
			continue
		}
		if _, dup := seen[day.DayOfWeek]; dup {
			errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("duplicate day %q", day.DayOfWeek)})
		}
		seen[day.DayOfWeek] = struct{}{}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetDayInput holds one day's schedule.
type SetDayInput struct {
	DayOfWeek  string
	WorkMode   domain.WorkMode
	FocusAreas []string
}

// Validate checks all fields and collects all errors.
func (i SetDayInput) Validate() error {
	var errs []domain.FieldError

	if !domain.IsDayOfWeek(i.DayOfWeek) {
		errs = append(errs, domain.FieldError{Field: "day_of_week", Message: fmt.Sprintf("unknown day %q", i.DayOfWeek)})
	}
	if i.WorkMode != "" {
		if _, ok := domain.ParseWorkMode(string(i.WorkMode)); !ok {
			errs = append(errs, domain.FieldError{Field: "work_mode", Message: "unknown work mode"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
