// Package settings implements the user-settings repository. Settings are
// keyed (user, setting_key) with a JSON value. The focus-area catalog lives
// here as a first-class record rather than as sentinel rows in the schedule
// table.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

const (
	table = "user_settings"

	keyFocusAreas = "focus_areas"
)

var conflictKey = []string{"user_id", "setting_key"}

// focusAreasValue is the JSON shape stored under the focus_areas key.
type focusAreasValue struct {
	Areas []string `json:"areas"`
}

// Repo provides user-settings persistence.
type Repo struct {
	db *replica.Client
}

// New creates a settings repository.
func New(db *replica.Client) *Repo {
	return &Repo{db: db}
}

// GetFocusAreas returns the user's focus-area catalog. Users without a
// stored catalog get an empty one.
func (r *Repo) GetFocusAreas(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{
		replica.Eq("user_id", userID),
		replica.Eq("setting_key", keyFocusAreas),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []string{}, nil
	}

	var value focusAreasValue
	if err := rows[0].JSON("setting_value", &value); err != nil {
		return nil, fmt.Errorf("decode focus areas: %w", err)
	}
	if value.Areas == nil {
		value.Areas = []string{}
	}
	return value.Areas, nil
}

// PutFocusAreas replaces the user's focus-area catalog.
func (r *Repo) PutFocusAreas(ctx context.Context, userID uuid.UUID, areas []string) ([]string, error) {
	if areas == nil {
		areas = []string{}
	}

	raw, err := json.Marshal(focusAreasValue{Areas: areas})
	if err != nil {
		return nil, fmt.Errorf("encode focus areas: %w", err)
	}

	rows, err := r.db.Upsert(ctx, table, []replica.Row{{
		"user_id":       userID,
		"setting_key":   keyFocusAreas,
		"setting_value": json.RawMessage(raw),
	}}, conflictKey)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upsert focus areas: %w", domain.ErrNotFound)
	}

	return areas, nil
}
