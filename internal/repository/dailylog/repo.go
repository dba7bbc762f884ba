// Package dailylog implements the journal-entry repository on top of the
// dual-write replication client. A log is keyed by (user, date) where date
// is a YYYY-MM-DD string in the journal timezone.
package dailylog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

const table = "daily_logs"

// Repo provides daily-log persistence.
type Repo struct {
	db *replica.Client
}

// New creates a daily-log repository.
func New(db *replica.Client) *Repo {
	return &Repo{db: db}
}

// GetByDate returns the log for a date, or ErrNotFound.
func (r *Repo) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLog, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{
		replica.Eq("user_id", userID),
		replica.Eq("date", date),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("daily log %s: %w", date, domain.ErrNotFound)
	}

	log := fromRow(rows[0])
	return &log, nil
}

// GetOrCreate returns the log for a date, inserting an empty one when none
// exists. A concurrent insert losing the unique-constraint race falls back
// to re-reading the winner's row.
func (r *Repo) GetOrCreate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLog, error) {
	log, err := r.GetByDate(ctx, userID, date)
	if err == nil {
		return log, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	rows, err := r.db.Insert(ctx, table, []replica.Row{{
		"user_id": userID,
		"date":    date,
	}})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return r.GetByDate(ctx, userID, date)
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert daily log %s: %w", date, domain.ErrNotFound)
	}

	created := fromRow(rows[0])
	return &created, nil
}

// UpdateFields applies a partial update to the log for a date. Returns
// ErrNotFound when no log exists for that date.
func (r *Repo) UpdateFields(ctx context.Context, userID uuid.UUID, date string, params domain.DailyLogUpdateParams) (*domain.DailyLog, error) {
	fields := buildFields(params)
	if len(fields) == 0 {
		return nil, domain.NewValidationError("params", "no fields to update")
	}

	rows, err := r.db.Update(ctx, table, fields, []replica.Condition{
		replica.Eq("user_id", userID),
		replica.Eq("date", date),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("daily log %s: %w", date, domain.ErrNotFound)
	}

	log := fromRow(rows[0])
	return &log, nil
}

// ListRange returns all logs with from <= date <= to, oldest first.
func (r *Repo) ListRange(ctx context.Context, userID uuid.UUID, from, to string) ([]domain.DailyLog, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{
		replica.Eq("user_id", userID),
		replica.Gte("date", from),
		replica.Lte("date", to),
	}, "date ASC")
	if err != nil {
		return nil, err
	}

	out := make([]domain.DailyLog, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Reset clears all journal content for a date back to the empty-log state.
// The row itself is kept so the day's existence is preserved.
func (r *Repo) Reset(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyLog, error) {
	fields := replica.Row{
		"situation":              "",
		"morning_insight":        nil,
		"morning_follow_up":      emptyList,
		"midday_insight":         nil,
		"midday_adjustment":      "",
		"midday_follow_up":       emptyList,
		"evening_insight":        nil,
		"evening_follow_up":      emptyList,
		"morning_complete":       false,
		"midday_complete":        false,
		"evening_complete":       false,
		"win":                    "",
		"weakness":               "",
		"tomorrows_prep":         "",
		"completed_action_items": emptyActionItems,
		"work_mode":              nil,
		"energy_level":           nil,
	}

	rows, err := r.db.Update(ctx, table, fields, []replica.Condition{
		replica.Eq("user_id", userID),
		replica.Eq("date", date),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("daily log %s: %w", date, domain.ErrNotFound)
	}

	log := fromRow(rows[0])
	return &log, nil
}

var (
	emptyList        = json.RawMessage(`[]`)
	emptyActionItems = json.RawMessage(`{"morning":[],"midday":[]}`)
)

// buildFields converts non-nil update params to column values. JSON columns
// are marshaled here so both stores receive identical payloads.
func buildFields(params domain.DailyLogUpdateParams) replica.Row {
	fields := replica.Row{}

	if params.Situation != nil {
		fields["situation"] = *params.Situation
	}
	if params.MorningInsight != nil {
		fields["morning_insight"] = *params.MorningInsight
	}
	if params.MorningFollowUp != nil {
		fields["morning_follow_up"] = marshalList(*params.MorningFollowUp)
	}
	if params.MiddayInsight != nil {
		fields["midday_insight"] = *params.MiddayInsight
	}
	if params.MiddayAdjustment != nil {
		fields["midday_adjustment"] = *params.MiddayAdjustment
	}
	if params.MiddayFollowUp != nil {
		fields["midday_follow_up"] = marshalList(*params.MiddayFollowUp)
	}
	if params.EveningInsight != nil {
		fields["evening_insight"] = *params.EveningInsight
	}
	if params.EveningFollowUp != nil {
		fields["evening_follow_up"] = marshalList(*params.EveningFollowUp)
	}
	if params.MorningComplete != nil {
		fields["morning_complete"] = *params.MorningComplete
	}
	if params.MiddayComplete != nil {
		fields["midday_complete"] = *params.MiddayComplete
	}
	if params.EveningComplete != nil {
		fields["evening_complete"] = *params.EveningComplete
	}
	if params.Win != nil {
		fields["win"] = *params.Win
	}
	if params.Weakness != nil {
		fields["weakness"] = *params.Weakness
	}
	if params.TomorrowsPrep != nil {
		fields["tomorrows_prep"] = *params.TomorrowsPrep
	}
	if params.CompletedActionItems != nil {
		raw, err := json.Marshal(params.CompletedActionItems)
		if err == nil {
			fields["completed_action_items"] = json.RawMessage(raw)
		}
	}
	if params.WorkMode != nil {
		fields["work_mode"] = *params.WorkMode
	}
	if params.EnergyLevel != nil {
		fields["energy_level"] = *params.EnergyLevel
	}

	return fields
}

func marshalList(msgs []domain.FollowUpMessage) json.RawMessage {
	if msgs == nil {
		msgs = []domain.FollowUpMessage{}
	}
	raw, err := json.Marshal(msgs)
	if err != nil {
		return emptyList
	}
	return raw
}

func fromRow(row replica.Row) domain.DailyLog {
	log := domain.DailyLog{
		ID:               row.UUID("id"),
		UserID:           row.UUID("user_id"),
		Date:             row.Date("date"),
		Situation:        row.String("situation"),
		MorningInsight:   row.RawJSON("morning_insight"),
		MiddayInsight:    row.RawJSON("midday_insight"),
		MiddayAdjustment: row.String("midday_adjustment"),
		EveningInsight:   row.RawJSON("evening_insight"),
		MorningComplete:  row.Bool("morning_complete"),
		MiddayComplete:   row.Bool("midday_complete"),
		EveningComplete:  row.Bool("evening_complete"),
		Win:              row.String("win"),
		Weakness:         row.String("weakness"),
		TomorrowsPrep:    row.String("tomorrows_prep"),
		WorkMode:         row.String("work_mode"),
		EnergyLevel:      row.String("energy_level"),
		CreatedAt:        row.Time("created_at"),
		UpdatedAt:        row.Time("updated_at"),
	}

	log.MorningFollowUp = unmarshalList(row, "morning_follow_up")
	log.MiddayFollowUp = unmarshalList(row, "midday_follow_up")
	log.EveningFollowUp = unmarshalList(row, "evening_follow_up")

	items := domain.CompletedActionItems{Morning: []int{}, Midday: []int{}}
	_ = row.JSON("completed_action_items", &items)
	log.CompletedActionItems = items

	return log
}

// unmarshalList decodes a follow-up transcript column. Missing or malformed
// values decode to an empty transcript.
func unmarshalList(row replica.Row, col string) []domain.FollowUpMessage {
	msgs := []domain.FollowUpMessage{}
	_ = row.JSON(col, &msgs)
	return msgs
}
