// Package wisdom implements the wisdom-library repository on top of the
// dual-write replication client.
package wisdom

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

const table = "wisdom_library"

// Repo provides wisdom-source persistence.
type Repo struct {
	db *replica.Client
}

// New creates a wisdom repository.
func New(db *replica.Client) *Repo {
	return &Repo{db: db}
}

// List returns all wisdom sources for a user, oldest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.WisdomSource, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{replica.Eq("user_id", userID)}, "created_at ASC")
	if err != nil {
		return nil, err
	}

	out := make([]domain.WisdomSource, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Create inserts a wisdom source. New sources start active.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, name, description, tag string) (*domain.WisdomSource, error) {
	rows, err := r.db.Insert(ctx, table, []replica.Row{{
		"user_id":     userID,
		"name":        name,
		"description": description,
		"tag":         tag,
		"is_active":   true,
	}})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert wisdom source: %w", domain.ErrNotFound)
	}

	w := fromRow(rows[0])
	return &w, nil
}

// CreateBatch inserts the default catalog for a new user in one write.
func (r *Repo) CreateBatch(ctx context.Context, userID uuid.UUID, seeds []domain.SeedWisdom) ([]domain.WisdomSource, error) {
	if len(seeds) == 0 {
		return nil, nil
	}

	batch := make([]replica.Row, 0, len(seeds))
	for _, s := range seeds {
		batch = append(batch, replica.Row{
			"user_id":     userID,
			"name":        s.Name,
			"description": s.Description,
			"tag":         s.Tag,
			"is_active":   true,
		})
	}

	rows, err := r.db.Insert(ctx, table, batch)
	if err != nil {
		return nil, err
	}

	out := make([]domain.WisdomSource, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Update applies a partial update. Returns ErrNotFound when the source does
// not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, userID, id uuid.UUID, params domain.WisdomUpdateParams) (*domain.WisdomSource, error) {
	fields := replica.Row{}
	if params.Name != nil {
		fields["name"] = *params.Name
	}
	if params.Description != nil {
		fields["description"] = *params.Description
	}
	if params.Tag != nil {
		fields["tag"] = *params.Tag
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
		return nil, fmt.Errorf("wisdom source %s: %w", id, domain.ErrNotFound)
	}

	w := fromRow(rows[0])
	return &w, nil
}

// Delete removes a wisdom source. Deleting a missing source is a no-op.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.DeleteWhere(ctx, table, []replica.Condition{
		replica.Eq("id", id),
		replica.Eq("user_id", userID),
	})
}

// Count returns the number of wisdom sources a user has.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	rows, err := r.db.Select(ctx, table, []replica.Condition{replica.Eq("user_id", userID)})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// RemoveDuplicates deletes wisdom sources sharing a name with an older one,
// keeping the earliest-created row per name. Returns the number removed.
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

func fromRow(row replica.Row) domain.WisdomSource {
	return domain.WisdomSource{
		ID:          row.UUID("id"),
		UserID:      row.UUID("user_id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		Tag:         row.String("tag"),
		IsActive:    row.Bool("is_active"),
		CreatedAt:   row.Time("created_at"),
		UpdatedAt:   row.Time("updated_at"),
	}
}
