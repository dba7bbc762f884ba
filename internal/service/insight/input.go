package insight

import (
	"strings"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/dateutil"
)

// GenerateInput holds the parameters for generating an insight.
type GenerateInput struct {
	Date             string
	Phase            domain.Phase
	MiddayReflection string
}

// Validate checks all fields and collects all errors. Generation exists for
// morning and midday only; the evening phase is a free-form reflection.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError

	if !dateutil.ValidDate(i.Date) {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if i.Phase != domain.PhaseMorning && i.Phase != domain.PhaseMidday {
		errs = append(errs, domain.FieldError{Field: "phase", Message: "must be morning or midday"})
	}
	if len(i.MiddayReflection) > 2000 {
		errs = append(errs, domain.FieldError{Field: "midday_reflection", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// FollowUpInput holds the parameters for a follow-up chat turn.
type FollowUpInput struct {
	Date     string
	Phase    domain.Phase
	Question string
}

// Validate checks all fields and collects all errors.
func (i FollowUpInput) Validate() error {
	var errs []domain.FieldError

	if !dateutil.ValidDate(i.Date) {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := domain.ParsePhase(string(i.Phase)); !ok {
		errs = append(errs, domain.FieldError{Field: "phase", Message: "must be morning, midday or evening"})
	}
	if strings.TrimSpace(i.Question) == "" {
		errs = append(errs, domain.FieldError{Field: "question", Message: "required"})
	}
	if len(i.Question) > 2000 {
		errs = append(errs, domain.FieldError{Field: "question", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
