package domain

import (
	"slices"

	"github.com/google/uuid"
)

// WorkMode is where the user works on a given day.
// The values must match the check constraint on the primary schedules table.
type WorkMode string

const (
	WorkModeHome   WorkMode = "WFH"
	WorkModeOffice WorkMode = "In Office"
	WorkModeOff    WorkMode = "Off"
)

// WorkModes is the fixed work-mode vocabulary, in display order.
var WorkModes = []WorkMode{WorkModeHome, WorkModeOffice, WorkModeOff}

// ParseWorkMode returns the matching WorkMode, or (WorkModeHome, false)
// when the value is not part of the vocabulary.
func ParseWorkMode(s string) (WorkMode, bool) {
	for _, m := range WorkModes {
		if string(m) == s {
			return m, true
		}
	}
	return WorkModeHome, false
}

// EnergyLevels is the fixed energy-level vocabulary. Legacy schedule rows
// carried these tokens inside the tags array, so the schedule adapters must
// recognize and exclude them from focus areas.
var EnergyLevels = []string{"High", "Medium", "Low", "Recovery"}

// IsEnergyLevel reports whether s is an energy-level token.
func IsEnergyLevel(s string) bool {
	return slices.Contains(EnergyLevels, s)
}

// DaysOfWeek lists the schedule day names, Monday first.
var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsDayOfWeek reports whether s is a valid schedule day name. Legacy sentinel
// rows (e.g. "_focus_areas_") fail this check and are skipped on read.
func IsDayOfWeek(s string) bool {
	return slices.Contains(DaysOfWeek, s)
}

// DaySchedule is the weekly work-mode/focus plan for one day of the week.
// It is keyed by day name, not by calendar date.
type DaySchedule struct {
	ID         uuid.UUID
	DayOfWeek  string
	WorkMode   WorkMode
	FocusAreas []string
}

// DefaultDaySchedule returns the empty schedule used for days without a row.
func DefaultDaySchedule(day string) DaySchedule {
	return DaySchedule{DayOfWeek: day, WorkMode: WorkModeHome, FocusAreas: []string{}}
}
