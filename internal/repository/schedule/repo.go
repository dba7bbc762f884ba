// Package schedule implements the weekly-plan repository on top of the
// dual-write replication client. Rows are keyed by (user, day-of-week) and
// pass through the schedrow adapters, so work-mode encoding differences
// between the two stores stay out of this package.
package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/schedrow"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

const table = "schedules"

// conflictKey is the natural key the upsert path relies on.
var conflictKey = []string{"user_id", "day_of_week"}

// Repo provides weekly-schedule persistence.
type Repo struct {
	db *replica.Client
}

// New creates a schedule repository.
func New(db *replica.Client) *Repo {
	return &Repo{db: db}
}

// ListWeek returns one schedule per day, Monday first. Days without a row
// get the default schedule. Rows whose day_of_week is not a real day name
// (legacy sentinel rows) are skipped.
func (r *Repo) ListWeek(ctx context.Context, userID uuid.UUID) ([]domain.DaySchedule, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{replica.Eq("user_id", userID)}, "updated_at DESC")
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]domain.DaySchedule, len(rows))
	for _, row := range rows {
		day := row.String("day_of_week")
		if !domain.IsDayOfWeek(day) {
			continue
		}
		// Rows come most-recently-updated first, so the first row per day
		// wins even when duplicates exist.
		if _, ok := byDay[day]; ok {
			continue
		}
		byDay[day] = schedrow.FromPrimaryRow(row)
	}

	week := make([]domain.DaySchedule, 0, len(domain.DaysOfWeek))
	for _, day := range domain.DaysOfWeek {
		if s, ok := byDay[day]; ok {
			week = append(week, s)
			continue
		}
		week = append(week, domain.DefaultDaySchedule(day))
	}
	return week, nil
}

// SaveWeek replaces the user's whole weekly plan.
func (r *Repo) SaveWeek(ctx context.Context, userID uuid.UUID, days []domain.DaySchedule) error {
	rows := make([]replica.Row, 0, len(days))
	for _, day := range days {
		if !domain.IsDayOfWeek(day.DayOfWeek) {
			return domain.NewValidationError("day_of_week", fmt.Sprintf("unknown day %q", day.DayOfWeek))
		}
		rows = append(rows, schedrow.ToPrimaryRow(userID, day))
	}

	if err := r.db.DeleteWhere(ctx, table, []replica.Condition{replica.Eq("user_id", userID)}); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	_, err := r.db.Insert(ctx, table, rows)
	return err
}

// UpsertDay writes one day's schedule, replacing any existing row for that
// day atomically via the natural key.
func (r *Repo) UpsertDay(ctx context.Context, userID uuid.UUID, day domain.DaySchedule) (*domain.DaySchedule, error) {
	if !domain.IsDayOfWeek(day.DayOfWeek) {
		return nil, domain.NewValidationError("day_of_week", fmt.Sprintf("unknown day %q", day.DayOfWeek))
	}

	rows, err := r.db.Upsert(ctx, table, []replica.Row{schedrow.ToPrimaryRow(userID, day)}, conflictKey)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upsert schedule %s: %w", day.DayOfWeek, domain.ErrNotFound)
	}

	saved := schedrow.FromPrimaryRow(rows[0])
	return &saved, nil
}

// RemoveDuplicates deletes extra rows per day, keeping the most-recently
// updated one, and removes legacy sentinel rows outright. Returns the
// number of rows removed.
func (r *Repo) RemoveDuplicates(ctx context.Context, userID uuid.UUID) (int, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{replica.Eq("user_id", userID)}, "updated_at DESC")
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(domain.DaysOfWeek))
	removed := 0
	for _, row := range rows {
		day := row.String("day_of_week")
		keep := false
		if domain.IsDayOfWeek(day) {
			if _, dup := seen[day]; !dup {
				seen[day] = struct{}{}
				keep = true
			}
		}
		if keep {
			continue
		}
		err := r.db.DeleteWhere(ctx, table, []replica.Condition{
			replica.Eq("id", row.UUID("id")),
			replica.Eq("user_id", userID),
		})
		if err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
