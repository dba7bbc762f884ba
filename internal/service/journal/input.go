package journal

import (
	"github.com/mindflowhq/mindflow-backend/internal/domain"
	"github.com/mindflowhq/mindflow-backend/pkg/dateutil"
)

// UpdateEntryInput holds the editable journal fields for one day.
// Nil means "don't change".
type UpdateEntryInput struct {
	Date             string
	Situation        *string
	MiddayAdjustment *string
	Win              *string
	Weakness         *string
	TomorrowsPrep    *string
	WorkMode         *string
	EnergyLevel      *string
}

// Validate checks all fields and collects all errors.
func (i UpdateEntryInput) Validate() error {
	var errs []domain.FieldError

	if !dateutil.ValidDate(i.Date) {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if i.Situation == nil && i.MiddayAdjustment == nil && i.Win == nil &&
		i.Weakness == nil && i.TomorrowsPrep == nil && i.WorkMode == nil && i.EnergyLevel == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.WorkMode != nil && *i.WorkMode != "" {
		if _, ok := domain.ParseWorkMode(*i.WorkMode); !ok {
			errs = append(errs, domain.FieldError{Field: "work_mode", Message: "unknown work mode"})
		}
	}
	if i.EnergyLevel != nil && *i.EnergyLevel != "" && !domain.IsEnergyLevel(*i.EnergyLevel) {
		errs = append(errs, domain.FieldError{Field: "energy_level", Message: "unknown energy level"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// params converts the input to repository update params.
func (i UpdateEntryInput) params() domain.DailyLogUpdateParams {
	return domain.DailyLogUpdateParams{
		Situation:        i.Situation,
		MiddayAdjustment: i.MiddayAdjustment,
		Win:              i.Win,
		Weakness:         i.Weakness,
		TomorrowsPrep:    i.TomorrowsPrep,
		WorkMode:         i.WorkMode,
		EnergyLevel:      i.EnergyLevel,
	}
}

// PhaseInput identifies one phase of one day.
type PhaseInput struct {
	Date  string
	Phase domain.Phase
}

// Validate checks all fields and collects all errors.
func (i PhaseInput) Validate() error {
	var errs []domain.FieldError

	if !dateutil.ValidDate(i.Date) {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := domain.ParsePhase(string(i.Phase)); !ok {
		errs = append(errs, domain.FieldError{Field: "phase", Message: "must be morning, midday or evening"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ToggleActionItemInput identifies one action item of a generated insight.
type ToggleActionItemInput struct {
	Date  string
	Phase domain.Phase
	Index int
}

// Validate checks all fields and collects all errors.
func (i ToggleActionItemInput) Validate() error {
	var errs []domain.FieldError

	if !dateutil.ValidDate(i.Date) {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if i.Phase != domain.PhaseMorning && i.Phase != domain.PhaseMidday {
		errs = append(errs, domain.FieldError{Field: "phase", Message: "action items exist for morning and midday only"})
	}
	if i.Index < 0 {
		errs = append(errs, domain.FieldError{Field: "index", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
