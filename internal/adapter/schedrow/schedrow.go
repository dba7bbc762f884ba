// Package schedrow converts between domain.DaySchedule and the two database
// row shapes for the schedules table. The primary table stores the work mode
// in its own column and keeps tags for focus areas only. The secondary table
// has no work_mode column: the work mode travels as the first tag, ahead of
// the focus areas.
package schedrow

import (
	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

// ToPrimaryRow builds the primary-table row for a schedule. Unknown work
// modes fall back to WFH and reserved tokens never enter the tags array.
func ToPrimaryRow(userID uuid.UUID, s domain.DaySchedule) replica.Row {
	mode, _ := domain.ParseWorkMode(string(s.WorkMode))
	return replica.Row{
		"user_id":     userID,
		"day_of_week": s.DayOfWeek,
		"work_mode":   string(mode),
		"tags":        cleanFocusAreas(s.FocusAreas),
	}
}

// ToSecondaryRow builds the secondary-table row for a schedule, encoding the
// work mode as the leading tag.
func ToSecondaryRow(userID uuid.UUID, s domain.DaySchedule) replica.Row {
	mode, _ := domain.ParseWorkMode(string(s.WorkMode))
	tags := append([]string{string(mode)}, cleanFocusAreas(s.FocusAreas)...)
	return replica.Row{
		"user_id":     userID,
		"day_of_week": s.DayOfWeek,
		"tags":        tags,
	}
}

// FromPrimaryRow decodes a primary-table row. Work-mode and energy-level
// tokens that leaked into tags on old rows are filtered out of focus areas.
func FromPrimaryRow(row replica.Row) domain.DaySchedule {
	mode, _ := domain.ParseWorkMode(row.String("work_mode"))
	return domain.DaySchedule{
		ID:         row.UUID("id"),
		DayOfWeek:  row.String("day_of_week"),
		WorkMode:   mode,
		FocusAreas: cleanFocusAreas(row.Strings("tags")),
	}
}

// FromSecondaryRow decodes a secondary-table row, recovering the work mode
// from the first recognizable tag. Rows with no work-mode tag default to WFH.
func FromSecondaryRow(row replica.Row) domain.DaySchedule {
	mode := domain.WorkModeHome
	for _, tag := range row.Strings("tags") {
		if m, ok := domain.ParseWorkMode(tag); ok {
			mode = m
			break
		}
	}
	return domain.DaySchedule{
		ID:         row.UUID("id"),
		DayOfWeek:  row.String("day_of_week"),
		WorkMode:   mode,
		FocusAreas: cleanFocusAreas(row.Strings("tags")),
	}
}

// SecondaryTransform reshapes a primary schedules row for the secondary
// table before column stripping: the work_mode value is folded back into
// the front of the tags array. Rows without work_mode pass through.
func SecondaryTransform(row replica.Row) replica.Row {
	if _, ok := row["work_mode"]; !ok {
		return row
	}

	out := make(replica.Row, len(row))
	for k, v := range row {
		if k == "work_mode" {
			continue
		}
		out[k] = v
	}

	mode, _ := domain.ParseWorkMode(row.String("work_mode"))
	out["tags"] = append([]string{string(mode)}, cleanFocusAreas(row.Strings("tags"))...)
	return out
}

// cleanFocusAreas drops reserved vocabulary tokens and empty strings, and
// never returns nil so text[] columns always receive a value.
func cleanFocusAreas(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, isMode := domain.ParseWorkMode(tag); isMode {
			continue
		}
		if domain.IsEnergyLevel(tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}
