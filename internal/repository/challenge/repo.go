// Package challenge implements the challenge repository on top of the
// dual-write replication client.
package challenge

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

const table = "challenges"

// Repo provides challenge persistence.
type Repo struct {
	db *replica.Client
}

// New creates a challenge repository.
func New(db *replica.Client) *Repo {
	return &Repo{db: db}
}

// List returns all challenges for a user, oldest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Challenge, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{replica.Eq("user_id", userID)}, "created_at ASC")
	if err != nil {
		return nil, err
	}

	out := make([]domain.Challenge, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Create inserts a challenge. New challenges start active.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Challenge, error) {
	rows, err := r.db.Insert(ctx, table, []replica.Row{{
		"user_id":     userID,
		"name":        name,
		"description": description,
		"is_active":   true,
	}})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert challenge: %w", domain.ErrNotFound)
	}

	c := fromRow(rows[0])
	return &c, nil
}

// CreateBatch inserts the default catalog for a new user in one write.
func (r *Repo) CreateBatch(ctx context.Context, userID uuid.UUID, seeds []domain.SeedChallenge) ([]domain.Challenge, error) {
	if len(seeds) == 0 {
		return nil, nil
	}

	batch := make([]replica.Row, 0, len(seeds))
	for _, s := range seeds {
		batch = append(batch, replica.Row{
			"user_id":     userID,
			"name":        s.Name,
			"description": s.Description,
			"is_active":   true,
		})
	}

	rows, err := r.db.Insert(ctx, table, batch)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Challenge, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Update applies a partial update. Returns ErrNotFound when the challenge
// does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, params domain.ChallengeUpdateParams) (*domain.Challenge, error) {
	fields := replica.Row{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.IsActive != nil {
		fields["is_active"] = *params.IsActive
	}
	if len(fields) == 0 {
		return nil, domain.NewValidationError("params", "no fields to update")
	}

	rows, err := r.db.Update(ctx, table, fields, []replica.Condition{
		replica.Eq("id", id),
		replica.Eq("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("challenge %s: %w", id, domain.ErrNotFound)
	}

	c := fromRow(rows[0])
	return &c, nil
}

// Delete removes a challenge. Deleting a missing challenge is a no-op.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.DeleteWhere(ctx, table, []replica.Condition{
		replica.Eq("id", id),
		replica.Eq("user_id", userID),
	})
}

// Count returns the number of challenges a user has.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{replica.Eq("user_id", userID)})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// RemoveDuplicates deletes challenges sharing a name with an older one,
// keeping the earliest-created row per name. Returns the number of rows
// removed. Running it twice removes nothing the second time.
func (r *Repo) RemoveDuplicates(ctx context.Context, userID uuid.UUID) (int, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{replica.Eq("user_id", userID)}, "created_at ASC")
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(rows))
	removed := 0
	for _, row := range rows {
		name := row.String("name")
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
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

func fromRow(row replica.Row) domain.Challenge {
	return domain.Challenge{
		ID:          row.UUID("id"),
		UserID:      row.UUID("user_id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		IsActive:    row.Bool("is_active"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}
